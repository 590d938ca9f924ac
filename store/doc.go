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

// Package store is the data-access core: it owns the on-disk
// environment, enumerates and resolves named spaces within it, and
// provides the Reader, Transaction and Mutator operations the rest of
// the system is built on.
//
// The underlying store is github.com/boltdb/bolt: an ordered,
// transactional, single-writer/multi-reader, memory-mapped key-value
// file. A bolt.DB plays the role of the Environment, a bolt.Tx the
// role of a Transaction, and a bolt.Bucket the role of a Space. bolt
// already gives MVCC snapshot reads and serialized writers for free,
// so this package's job is exactly the policy layer spec.md assigns
// to "Env Handle", "Space Registry", "Reader", "Transaction" and
// "Mutator": nothing here re-implements storage, only shapes access
// to it.
package store
