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

// DefaultPageSize is a suggested page size for adapters that need one;
// ported from the original's constants.rs (DEFAULT_PAGE_SIZE = 100).
// The core never applies it itself — callers always pass an explicit
// limit.
const DefaultPageSize = 100

// ReadPage materializes an ordered page of entries for space: it
// obtains its own read snapshot, walks the ordered cursor, skips the
// first offset items, and collects up to limit, copying key and value
// so the result outlives the snapshot (spec.md §4.2). offset >= size
// yields an empty, non-error result.
func ReadPage(env *Env, space string, offset, limit int) ([]Entry, error) {
	txn, err := BeginRead(env)
	if err != nil {
		return nil, err
	}
	defer txn.Abort()

	b := txn.bucket(space)
	if b == nil {
		return nil, spaceNotFoundErr(space)
	}

	cap := limit
	if cap > 256 {
		cap = 256
	}
	out := make([]Entry, 0, cap)
	skipped := 0
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, Entry{Key: string(k), Value: append([]byte(nil), v...)})
	}
	return out, nil
}
