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
	"runtime"
	"sync/atomic"

	"github.com/boltdb/bolt"
	logpkg "github.com/ledgerwatch/log/v3"

	"github.com/nibzard/lmdb-tui/kverrors"
)

// Txn is a scoped acquisition of the environment: a read snapshot or
// the exclusive writer. Commit and Abort consume it; dropping it
// without calling either is treated as Abort (spec.md I4), enforced
// here with a finalizer since Go has no move semantics to make that
// the compiler's problem.
type Txn struct {
	env      *Env
	tx       *bolt.Tx
	writable bool
	readerID uint32

	done atomic.Bool
}

// BeginRead begins a read transaction: an MVCC snapshot fixed at this
// moment (spec.md I2). Many may be live concurrently.
func BeginRead(env *Env) (*Txn, error) {
	tx, err := env.db.Begin(false)
	if err != nil {
		return nil, kverrors.New(kverrors.StorageError, "begin read transaction", err)
	}
	t := &Txn{env: env, tx: tx, writable: false, readerID: env.beginReader()}
	runtime.SetFinalizer(t, finalizeTxn)
	readTxnsStarted.Inc()
	return t, nil
}

// BeginWrite begins the single read-write transaction (spec.md I1).
// It fails fast with WriterBusy if another writer is already live in
// this process, and with ReadOnlyEnv if the environment itself was
// opened read-only — both checked before calling into bolt, which
// would otherwise simply block the single-threaded foreground.
func BeginWrite(env *Env) (*Txn, error) {
	if env.readOnly {
		return nil, kverrors.New(kverrors.ReadOnlyEnv, "begin write transaction", nil)
	}
	if !env.writerBusy.CompareAndSwap(false, true) {
		writerBusyTotal.Inc()
		return nil, kverrors.New(kverrors.WriterBusy, "begin write transaction", nil)
	}
	tx, err := env.db.Begin(true)
	if err != nil {
		env.writerBusy.Store(false)
		return nil, kverrors.New(kverrors.StorageError, "begin write transaction", err)
	}
	t := &Txn{env: env, tx: tx, writable: true}
	runtime.SetFinalizer(t, finalizeTxn)
	writeTxnsStarted.Inc()
	return t, nil
}

// Writable reports whether this is the write transaction.
func (t *Txn) Writable() bool { return t.writable }

// Commit atomically publishes every mutation performed in this
// transaction (spec.md I4). Commit on a read transaction simply ends
// the snapshot.
func (t *Txn) Commit() error {
	if !t.done.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(t, nil)
	t.release()
	if !t.writable {
		if err := t.tx.Rollback(); err != nil {
			return kverrors.New(kverrors.StorageError, "end read transaction", err)
		}
		return nil
	}
	if err := t.tx.Commit(); err != nil {
		return kverrors.New(kverrors.StorageError, "commit transaction", err)
	}
	return nil
}

// Abort discards every mutation performed in this transaction
// (spec.md I4).
func (t *Txn) Abort() error {
	if !t.done.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(t, nil)
	t.release()
	if err := t.tx.Rollback(); err != nil {
		return kverrors.New(kverrors.StorageError, "abort transaction", err)
	}
	return nil
}

func (t *Txn) release() {
	if t.writable {
		t.env.writerBusy.Store(false)
	} else {
		t.env.endReader(t.readerID)
	}
}

func finalizeTxn(t *Txn) {
	if t.done.CompareAndSwap(false, true) {
		logpkg.Warn("transaction dropped without commit/abort, aborting", "writable", t.writable)
		t.release()
		_ = t.tx.Rollback()
	}
}

// bucket resolves name to a bolt bucket within this transaction,
// mapping "(unnamed)" to the reserved anonymous bucket.
func (t *Txn) bucket(name string) *bolt.Bucket {
	if name == UnnamedSpace {
		return t.tx.Bucket(unnamedBucket)
	}
	return t.tx.Bucket([]byte(name))
}

// createBucket resolves or lazily creates the named bucket. Only
// valid on a writable Txn.
func (t *Txn) createBucket(name string) (*bolt.Bucket, error) {
	key := []byte(name)
	if name == UnnamedSpace {
		key = unnamedBucket
	}
	existed := t.tx.Bucket(key) != nil
	if !existed && name != UnnamedSpace && t.env.spaceCount() >= t.env.maxSpaces {
		return nil, kverrors.TooManySpacesErr(t.env.maxSpaces)
	}
	b, err := t.tx.CreateBucketIfNotExists(key)
	if err != nil {
		return nil, kverrors.New(kverrors.StorageError, "create space", err)
	}
	if !existed && name != UnnamedSpace {
		t.env.noteSpaceCreated(name)
	}
	return b, nil
}
