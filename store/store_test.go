package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nibzard/lmdb-tui/kverrors"
)

func errKindString(err error) string {
	return kverrors.KeyOf(err).String()
}

func openTemp(t *testing.T, readOnly bool) (*Env, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.db")
	if readOnly {
		// Create the file first via a write-mode open/close so the
		// read-only Open below has something to find.
		w, err := Open(path, Options{})
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	env, err := Open(path, Options{ReadOnly: readOnly})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	return env, path
}

func putString(t *testing.T, env *Env, space, key, value string) {
	t.Helper()
	txn, err := BeginWrite(env)
	require.NoError(t, err)
	require.NoError(t, Put(env, txn, space, key, []byte(value), nil))
	require.NoError(t, txn.Commit())
}

func TestOpenMissingReadOnlyIsNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"), Options{ReadOnly: true})
	require.Error(t, err)
	require.Equal(t, "not_found", errKindString(err))
}

func TestPutGetDeleteRoundTrip(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, "data", "foo", "bar")

	got, err := ReadPage(env, "data", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []Entry{{Key: "foo", Value: []byte("bar")}}, got)

	txn, err := BeginWrite(env)
	require.NoError(t, err)
	require.NoError(t, Delete(env, txn, "data", "foo", nil))
	require.NoError(t, txn.Commit())

	got, err = ReadPage(env, "data", 0, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDeleteAbsentKeyIsNoop(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, "data", "foo", "bar")

	txn, err := BeginWrite(env)
	require.NoError(t, err)
	require.NoError(t, Delete(env, txn, "data", "does-not-exist", nil))
	require.NoError(t, txn.Commit())
}

func TestWriterBusy(t *testing.T) {
	env, _ := openTemp(t, false)
	txn, err := BeginWrite(env)
	require.NoError(t, err)
	defer txn.Abort()

	_, err = BeginWrite(env)
	require.Error(t, err)
	require.Equal(t, "writer_busy", errKindString(err))
}

func TestReadOnlyEnvRejectsWrite(t *testing.T) {
	env, _ := openTemp(t, true)
	_, err := BeginWrite(env)
	require.Error(t, err)
	require.Equal(t, "read_only_env", errKindString(err))
}

// P6: a writer aborted mid-sequence leaves the store byte-for-byte
// equivalent to its state at begin.
func TestAbortDiscardsChanges(t *testing.T) {
	env, _ := openTemp(t, false)

	txn, err := BeginWrite(env)
	require.NoError(t, err)
	require.NoError(t, Put(env, txn, "data", "foo", []byte("bar"), nil))
	require.NoError(t, txn.Abort())

	// The abort also discards the space that the Put auto-created.
	got, err := ReadPage(env, "data", 0, 10)
	require.Error(t, err)
	require.Equal(t, "not_found", errKindString(err))
	require.Empty(t, got)
}

func TestReadPagePaginationBoundaries(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, "data", "a", "1")
	putString(t, env, "data", "b", "2")
	putString(t, env, "data", "c", "3")

	got, err := ReadPage(env, "data", 10, 10)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = ReadPage(env, "data", 1, 1)
	require.NoError(t, err)
	require.Equal(t, []Entry{{Key: "b", Value: []byte("2")}}, got)
}

func TestListSpacesCatalogOrder(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, "zzz", "k", "v")
	putString(t, env, "aaa", "k", "v")

	names, err := ListSpaces(env)
	require.NoError(t, err)
	require.Equal(t, []string{"aaa", "zzz"}, names)
}

func TestListSpacesFallsBackToUnnamed(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, UnnamedSpace, "k", "v")

	names, err := ListSpaces(env)
	require.NoError(t, err)
	require.Equal(t, []string{UnnamedSpace}, names)
}

func TestResolveMissingSpace(t *testing.T) {
	env, _ := openTemp(t, false)
	txn, err := BeginRead(env)
	require.NoError(t, err)
	defer txn.Abort()

	_, err = Resolve(txn, "nope")
	require.Error(t, err)
	require.Equal(t, "not_found", errKindString(err))
}

func TestEnvAndSpaceStats(t *testing.T) {
	env, _ := openTemp(t, false)
	putString(t, env, "data", "foo", "bar")

	es, err := Stats(env)
	require.NoError(t, err)
	require.Equal(t, DefaultMaxReaders, es.MaxReaders)

	ss, err := SpaceStatsFor(env, "data")
	require.NoError(t, err)
	require.Equal(t, 1, ss.Entries)
}

// TestMaxSpacesCeilingIsEnforced is spec.md §3's "max N spaces"
// invariant: creating one space beyond the ceiling fails, while
// reusing an already-created space, or writing up to the ceiling,
// still succeeds.
func TestMaxSpacesCeilingIsEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	env, err := Open(path, Options{MaxSpaces: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	require.Equal(t, 2, env.MaxSpaces())

	putString(t, env, "a", "k", "v")
	putString(t, env, "b", "k", "v")

	// Reusing an existing space never counts against the ceiling.
	putString(t, env, "a", "k2", "v")

	txn, err := BeginWrite(env)
	require.NoError(t, err)
	err = Put(env, txn, "c", "k", []byte("v"), nil)
	require.Error(t, err)
	require.Equal(t, "too_many_spaces", errKindString(err))
	require.NoError(t, txn.Abort())
}
