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

// Package transfer implements Import/Export (spec.md §4.9): streaming
// a space's entries to a text or tabular encoding, and loading them
// back, with keys and values round-tripping exactly (P7).
package transfer

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/nibzard/lmdb-tui/kverrors"
	"github.com/nibzard/lmdb-tui/store"
)

// Format selects the on-wire encoding.
type Format int

const (
	// FormatText is a streamed JSON array of {"key","value"} objects,
	// value base64-encoded so arbitrary binary round-trips exactly.
	FormatText Format = iota
	// FormatTabular is CSV with a "key","value" header, value
	// base64-encoded for the same reason.
	FormatTabular
)

// record is the on-wire shape for FormatText.
type record struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Progress is called after each entry is written or read, with done
// counting entries so far. total is always 0: neither Export nor
// Import knows the number of entries in advance.
type Progress func(done, total int)

// Export streams every entry of space to w in the given format.
// Entries are read in a single snapshot transaction (spec.md §4.2 I3:
// reads never observe a partial write).
func Export(env *store.Env, space string, format Format, w io.Writer, progress Progress) error {
	txn, err := store.BeginRead(env)
	if err != nil {
		return err
	}
	defer txn.Abort()

	cur, err := txn.OpenCursor(space)
	if err != nil {
		return err
	}

	switch format {
	case FormatTabular:
		return exportTabular(cur, w, progress)
	default:
		return exportText(cur, w, progress)
	}
}

func exportText(cur *store.Cursor, w io.Writer, progress Progress) error {
	enc := json.NewEncoder(w)
	if _, err := w.Write([]byte("[")); err != nil {
		return kverrors.New(kverrors.StorageError, "export write", err)
	}
	done := 0
	key, value, ok := cur.First()
	for ok {
		if done > 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return kverrors.New(kverrors.StorageError, "export write", err)
			}
		}
		r := record{Key: key, Value: base64.StdEncoding.EncodeToString(value)}
		if err := enc.Encode(r); err != nil {
			return kverrors.New(kverrors.StorageError, "export encode", err)
		}
		done++
		if progress != nil {
			progress(done, 0)
		}
		key, value, ok = cur.Next()
	}
	_, err := w.Write([]byte("]"))
	if err != nil {
		return kverrors.New(kverrors.StorageError, "export write", err)
	}
	return nil
}

func exportTabular(cur *store.Cursor, w io.Writer, progress Progress) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return kverrors.New(kverrors.StorageError, "export write", err)
	}
	done := 0
	key, value, ok := cur.First()
	for ok {
		if err := cw.Write([]string{key, base64.StdEncoding.EncodeToString(value)}); err != nil {
			return kverrors.New(kverrors.StorageError, "export write", err)
		}
		done++
		if progress != nil {
			progress(done, 0)
		}
		key, value, ok = cur.Next()
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return kverrors.New(kverrors.StorageError, "export flush", err)
	}
	return nil
}

// Import reads entries from r in the given format and writes them
// into space within a single write transaction, committing only once
// every entry has been applied (spec.md I4: a transaction is atomic).
func Import(env *store.Env, space string, format Format, r io.Reader, progress Progress) (int, error) {
	txn, err := store.BeginWrite(env)
	if err != nil {
		return 0, err
	}

	var n int
	switch format {
	case FormatTabular:
		n, err = importTabular(env, txn, space, r, progress)
	default:
		n, err = importText(env, txn, space, r, progress)
	}
	if err != nil {
		_ = txn.Abort()
		return 0, err
	}
	if err := txn.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func importText(env *store.Env, txn *store.Txn, space string, r io.Reader, progress Progress) (int, error) {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil { // consume opening '['
		return 0, kverrors.New(kverrors.StorageError, "import decode", err)
	}
	n := 0
	for dec.More() {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return n, kverrors.New(kverrors.StorageError, "import decode", err)
		}
		value, err := base64.StdEncoding.DecodeString(rec.Value)
		if err != nil {
			return n, kverrors.New(kverrors.StorageError, "import decode value", err)
		}
		if err := store.Put(env, txn, space, rec.Key, value, nil); err != nil {
			return n, err
		}
		n++
		if progress != nil {
			progress(n, 0)
		}
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return n, kverrors.New(kverrors.StorageError, "import decode", err)
	}
	return n, nil
}

func importTabular(env *store.Env, txn *store.Txn, space string, r io.Reader, progress Progress) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	header, err := cr.Read()
	if err != nil {
		return 0, kverrors.New(kverrors.StorageError, "import read header", err)
	}
	if len(header) != 2 || header[0] != "key" || header[1] != "value" {
		return 0, kverrors.New(kverrors.BadQuery, "unexpected tabular header", nil)
	}

	n := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, kverrors.New(kverrors.StorageError, "import read", err)
		}
		value, err := base64.StdEncoding.DecodeString(rec[1])
		if err != nil {
			return n, kverrors.New(kverrors.StorageError, "import decode value", err)
		}
		if err := store.Put(env, txn, space, rec[0], value, nil); err != nil {
			return n, err
		}
		n++
		if progress != nil {
			progress(n, 0)
		}
	}
	return n, nil
}
