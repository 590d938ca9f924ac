/*
   Copyright 2024 lmdb-tui contributors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package store

import (
	"github.com/nibzard/lmdb-tui/kverrors"
)

// Get observes txn's own pending view: inside a write transaction a
// prior Put/Delete in the same transaction is immediately visible
// (spec.md I3), because bolt transactions always read through their
// own pending writes.
func Get(env *Env, txn *Txn, space, key string) ([]byte, error) {
	b := txn.bucket(space)
	if b == nil {
		return nil, nil
	}
	v := b.Get([]byte(key))
	if v == nil {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

// Recorder captures undo records. It is satisfied by *undo.Log; the
// interface lives here (rather than importing package undo) to avoid
// a dependency cycle, since package undo itself calls back into Get/
// Put/Delete to apply inverses.
type Recorder interface {
	RecordPut(space, key string, prev []byte, newValue []byte)
	RecordDelete(space, key string, prev []byte)
}

// Put writes value at key within space, creating the space on first
// use (this spec's chosen resolution of the "does put auto-create a
// missing space" open question — see SPEC_FULL.md §4.6/§9), and
// appends the inverse to log.
func Put(env *Env, txn *Txn, space, key string, value []byte, log Recorder) error {
	if !txn.writable {
		return kverrors.New(kverrors.ReadOnlyEnv, "put on read-only transaction", nil)
	}
	prev, err := Get(env, txn, space, key)
	if err != nil {
		return err
	}
	b, err := txn.createBucket(space)
	if err != nil {
		return err
	}
	if err := b.Put([]byte(key), value); err != nil {
		return kverrors.New(kverrors.StorageError, "put", err)
	}
	if log != nil {
		log.RecordPut(space, key, prev, value)
	}
	return nil
}

// Delete removes key from space if present; it is a no-op on an
// absent key but still appends an undo record whose inverse is
// likewise a no-op (spec.md §4.6).
func Delete(env *Env, txn *Txn, space, key string, log Recorder) error {
	if !txn.writable {
		return kverrors.New(kverrors.ReadOnlyEnv, "delete on read-only transaction", nil)
	}
	prev, err := Get(env, txn, space, key)
	if err != nil {
		return err
	}
	b := txn.bucket(space)
	if b != nil {
		if err := b.Delete([]byte(key)); err != nil {
			return kverrors.New(kverrors.StorageError, "delete", err)
		}
	}
	if log != nil {
		log.RecordDelete(space, key, prev)
	}
	return nil
}
