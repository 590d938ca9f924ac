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

package query

import (
	"strings"

	"github.com/oliveagle/jsonpath"

	"github.com/nibzard/lmdb-tui/codec"
	"github.com/nibzard/lmdb-tui/store"
)

// Entry mirrors store.Entry; query re-exports its own so callers don't
// need to import store just to hold a scan result.
type Entry = store.Entry

// Count returns the total number of entries in space matching mode
// (spec.md §4.5, P3). It never materializes the matches themselves.
func Count(env *store.Env, space string, mode Mode) (int, error) {
	n := 0
	err := scan(env, space, mode, func(Entry) bool {
		n++
		return true
	})
	return n, err
}

// Page returns an ordered window of entries in space matching mode,
// skipping the first offset matches and collecting up to limit
// (spec.md §4.5). It performs a single pass — count and page never
// double-iterate.
func Page(env *store.Env, space string, mode Mode, offset, limit int) ([]Entry, error) {
	out := make([]Entry, 0, limit)
	skipped := 0
	err := scan(env, space, mode, func(e Entry) bool {
		if skipped < offset {
			skipped++
			return true
		}
		if len(out) >= limit {
			return false
		}
		out = append(out, e)
		return len(out) < limit
	})
	return out, err
}

// scan walks space applying mode's predicate, calling visit for every
// match in key order. visit returns false to stop early (used by Page
// once limit matches have been collected); Prefix and Range scans
// additionally terminate on their own once the ordered cursor passes
// the upper bound (spec.md I7), independent of what visit returns.
func scan(env *store.Env, space string, mode Mode, visit func(Entry) bool) error {
	txn, err := store.BeginRead(env)
	if err != nil {
		return err
	}
	defer txn.Abort()

	cur, err := txn.OpenCursor(space)
	if err != nil {
		return err
	}

	switch mode.Kind {
	case KindPrefix:
		return scanPrefix(cur, mode.Prefix, visit)
	case KindRange:
		return scanRange(cur, mode.Lo, mode.Hi, visit)
	case KindRegex:
		return scanFull(cur, func(key string, _ []byte) bool {
			return mode.Regex.MatchString(key)
		}, visit)
	case KindValuePath:
		compiled, err := jsonpath.Compile(mode.Path)
		if err != nil {
			return err
		}
		return scanFull(cur, func(_ string, value []byte) bool {
			v, err := codec.Decode(value)
			if err != nil {
				return false
			}
			res, err := compiled.Lookup(v.Data)
			if err != nil {
				return false
			}
			return !isEmptyMatch(res)
		}, visit)
	default:
		return scanPrefix(cur, "", visit)
	}
}

// scanPrefix includes keys starting with prefix and terminates as
// soon as a key is observed that both fails to start with prefix and
// sorts after it — i.e. once the ordered cursor has passed every
// possible prefix extension (spec.md I7, boundary scenario 1).
func scanPrefix(cur *store.Cursor, prefix string, visit func(Entry) bool) error {
	key, value, ok := cur.Seek(prefix)
	for ok {
		if !strings.HasPrefix(key, prefix) {
			if key > prefix {
				return nil
			}
		} else if !visit(Entry{Key: key, Value: value}) {
			return nil
		}
		key, value, ok = cur.Next()
	}
	return nil
}

// scanRange includes keys with lo <= k < hi and terminates as soon as
// a key >= hi is observed (spec.md I7, boundary scenario 2).
func scanRange(cur *store.Cursor, lo, hi string, visit func(Entry) bool) error {
	key, value, ok := cur.Seek(lo)
	for ok {
		if key >= hi {
			return nil
		}
		if !visit(Entry{Key: key, Value: value}) {
			return nil
		}
		key, value, ok = cur.Next()
	}
	return nil
}

// scanFull performs the unavoidable full iteration Regex and
// ValuePath queries require (spec.md §4.5: "no early termination").
func scanFull(cur *store.Cursor, predicate func(key string, value []byte) bool, visit func(Entry) bool) error {
	key, value, ok := cur.First()
	for ok {
		if predicate(key, value) {
			if !visit(Entry{Key: key, Value: value}) {
				return nil
			}
		}
		key, value, ok = cur.Next()
	}
	return nil
}

func isEmptyMatch(v interface{}) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}
