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

// Space identifies a named, independently-ordered collection of
// entries. It is a thin value — resolution happens per-Txn via
// Resolve, since a bolt bucket handle is only valid for the
// lifetime of the transaction that opened it.
type Space struct {
	Name string
}

// ListSpaces enumerates the spaces visible in a fresh read snapshot.
// Order is catalog order (spec.md §4.1): the in-memory btree mirror
// keeps names sorted ascending, independent of creation order.
func ListSpaces(env *Env) ([]string, error) {
	txn, err := BeginRead(env)
	if err != nil {
		return nil, err
	}
	defer txn.Abort()

	env.catalogMu.RLock()
	names := make([]string, 0, env.catalog.Len())
	env.catalog.Ascend(func(name string) bool {
		names = append(names, name)
		return true
	})
	env.catalogMu.RUnlock()

	kept := names[:0]
	for _, name := range names {
		bucketName := []byte(name)
		if txn.tx.Bucket(bucketName) != nil {
			kept = append(kept, name)
		}
	}

	if len(kept) == 0 {
		if b := txn.tx.Bucket(unnamedBucket); b != nil {
			if k, _ := b.Cursor().First(); k != nil {
				return []string{UnnamedSpace}, nil
			}
		}
		return nil, nil
	}
	return kept, nil
}

// Resolve looks up name within txn's snapshot, mapping the reserved
// name UnnamedSpace to the anonymous space. It fails with
// kverrors.SpaceNotFound if the space does not exist in this snapshot.
func Resolve(txn *Txn, name string) (*Space, error) {
	if txn.bucket(name) == nil {
		return nil, kverrors.SpaceNotFound(name)
	}
	return &Space{Name: name}, nil
}
