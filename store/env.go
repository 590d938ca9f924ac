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
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring"
	"github.com/boltdb/bolt"
	"github.com/google/btree"

	"github.com/nibzard/lmdb-tui/kverrors"
)

// UnnamedSpace is the reserved name addressing the environment's root
// (anonymous) space.
const UnnamedSpace = "(unnamed)"

// unnamedBucket is the bolt bucket name backing UnnamedSpace. It must
// never collide with a real, user-created space name.
var unnamedBucket = []byte("\x00unnamed\x00")

// DefaultMaxSpaces is the default ceiling on concurrently open spaces,
// per spec.md §3 ("A maximum of N spaces (default 128)").
const DefaultMaxSpaces = 128

// DefaultMaxReaders mirrors LMDB's traditional default reader-slot
// count. bolt has no such ceiling internally; the Env only reports it
// as EnvStats.MaxReaders next to NumReaders. BeginRead does not limit
// the number of live readers.
const DefaultMaxReaders = 126

// Options configures Open.
type Options struct {
	ReadOnly  bool
	MaxSpaces int
	MaxReaders int
}

// Env is the process-wide handle to the on-disk environment: it owns
// the bolt.DB memory map, gates read-only vs read-write mode, and
// tracks the bookkeeping (live readers, space catalog) that bolt
// itself does not expose.
type Env struct {
	db       *bolt.DB
	path     string
	readOnly bool

	maxSpaces  int
	maxReaders int

	writerBusy atomic.Bool

	readersMu sync.Mutex
	readers   *roaring.Bitmap
	nextRdID  uint32

	catalogMu sync.RWMutex
	catalog   *btree.BTreeG[string]
}

// Open opens (creating if absent, unless ReadOnly) the environment
// rooted at path. Errors are mapped onto the kverrors taxonomy: a
// missing path is NotFound, an unreadable/unwritable path is
// PermissionDenied, and a recognized-but-damaged file is Corruption.
func Open(path string, opts Options) (*Env, error) {
	if opts.MaxSpaces <= 0 {
		opts.MaxSpaces = DefaultMaxSpaces
	}
	if opts.MaxReaders <= 0 {
		opts.MaxReaders = DefaultMaxReaders
	}

	if opts.ReadOnly {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, kverrors.New(kverrors.NotFound, "environment path does not exist", err)
			}
			if os.IsPermission(err) {
				return nil, kverrors.New(kverrors.PermissionDenied, "environment path unreadable", err)
			}
			return nil, kverrors.New(kverrors.StorageError, "stat environment path", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, mapOpenErr(err)
	}

	env := &Env{
		db:         db,
		path:       path,
		readOnly:   opts.ReadOnly,
		maxSpaces:  opts.MaxSpaces,
		maxReaders: opts.MaxReaders,
		readers:    roaring.NewBitmap(),
		catalog:    btree.NewG[string](32, func(a, b string) bool { return a < b }),
	}
	if err := env.loadCatalog(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return env, nil
}

func mapOpenErr(err error) error {
	switch {
	case os.IsNotExist(err):
		return kverrors.New(kverrors.NotFound, "open environment", err)
	case os.IsPermission(err):
		return kverrors.New(kverrors.PermissionDenied, "open environment", err)
	case errors.Is(err, bolt.ErrInvalid), errors.Is(err, bolt.ErrVersionMismatch), errors.Is(err, bolt.ErrChecksum):
		return kverrors.New(kverrors.Corruption, "open environment", err)
	default:
		return kverrors.New(kverrors.StorageError, "open environment", err)
	}
}

// ReadOnly reports whether Env was opened in read-only mode.
func (e *Env) ReadOnly() bool { return e.readOnly }

// Path returns the path Env was opened with.
func (e *Env) Path() string { return e.path }

// MaxSpaces returns the configured space ceiling.
func (e *Env) MaxSpaces() int { return e.maxSpaces }

// Close releases the underlying memory map. Close must only be called
// once no transaction holds the environment.
func (e *Env) Close() error {
	return e.db.Close()
}

// loadCatalog populates the in-memory, always-sorted mirror of space
// names used by ListSpaces, avoiding a full bucket re-scan on every
// call. It runs once at Open; Txn.createBucket then adds each newly
// created space through noteSpaceCreated.
func (e *Env) loadCatalog() error {
	return e.db.View(func(tx *bolt.Tx) error {
		e.catalogMu.Lock()
		defer e.catalogMu.Unlock()
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if string(name) == string(unnamedBucket) {
				return nil
			}
			e.catalog.ReplaceOrInsert(string(name))
			return nil
		})
	})
}

func (e *Env) noteSpaceCreated(name string) {
	e.catalogMu.Lock()
	defer e.catalogMu.Unlock()
	e.catalog.ReplaceOrInsert(name)
}

// spaceCount reports the number of named spaces currently in the
// catalog. UnnamedSpace is never tracked in the catalog (loadCatalog
// skips it and createBucket never passes it to noteSpaceCreated),
// matching spec.md §3's "max
// N spaces" ceiling, which counts named spaces only.
func (e *Env) spaceCount() int {
	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()
	return e.catalog.Len()
}

// beginReader records a new live reader and returns its id, used to
// remove it again in endReader. It implements EnvStats.NumReaders,
// which bolt does not expose on its own.
func (e *Env) beginReader() uint32 {
	e.readersMu.Lock()
	defer e.readersMu.Unlock()
	id := e.nextRdID
	e.nextRdID++
	e.readers.Add(id)
	return id
}

func (e *Env) endReader(id uint32) {
	e.readersMu.Lock()
	defer e.readersMu.Unlock()
	e.readers.Remove(id)
}

func (e *Env) numReaders() int {
	e.readersMu.Lock()
	defer e.readersMu.Unlock()
	return int(e.readers.GetCardinality())
}
