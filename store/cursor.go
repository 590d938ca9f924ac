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

// Cursor is ordered iteration over a space within an already-open
// Txn. It exists so package query's Scanner can implement early
// termination (spec.md I7) without importing bolt directly — store
// is the only package that touches the underlying engine.
type Cursor struct {
	txn *Txn
	c   interface {
		First() ([]byte, []byte)
		Next() ([]byte, []byte)
		Seek([]byte) ([]byte, []byte)
	}
}

// OpenCursor opens a cursor over space within txn. txn must be a read
// transaction (or the writer) that is still live.
func (t *Txn) OpenCursor(space string) (*Cursor, error) {
	b := t.bucket(space)
	if b == nil {
		return nil, spaceNotFoundErr(space)
	}
	return &Cursor{txn: t, c: b.Cursor()}, nil
}

// First positions the cursor at the first key, ok is false if the
// space is empty.
func (c *Cursor) First() (key string, value []byte, ok bool) {
	k, v := c.c.First()
	return toEntry(k, v)
}

// Next advances the cursor, ok is false once iteration is exhausted.
func (c *Cursor) Next() (key string, value []byte, ok bool) {
	k, v := c.c.Next()
	return toEntry(k, v)
}

// Seek positions the cursor at the first key >= seek.
func (c *Cursor) Seek(seek string) (key string, value []byte, ok bool) {
	k, v := c.c.Seek([]byte(seek))
	return toEntry(k, v)
}

func toEntry(k, v []byte) (string, []byte, bool) {
	if k == nil {
		return "", nil, false
	}
	return string(k), v, true
}
