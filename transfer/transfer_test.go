package transfer

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nibzard/lmdb-tui/store"
)

func openTemp(t *testing.T) *store.Env {
	t.Helper()
	env, err := store.Open(filepath.Join(t.TempDir(), "env.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	return env
}

func seed(t *testing.T, env *store.Env, space string, kvs map[string][]byte) {
	t.Helper()
	txn, err := store.BeginWrite(env)
	require.NoError(t, err)
	for k, v := range kvs {
		require.NoError(t, store.Put(env, txn, space, k, v, nil))
	}
	require.NoError(t, txn.Commit())
}

// TestExportImportTextRoundTrip is P7: export then import into a
// fresh space reproduces the original key/value set exactly,
// including bytes that are not valid UTF-8.
func TestExportImportTextRoundTrip(t *testing.T) {
	env := openTemp(t)
	want := map[string][]byte{
		"a": []byte("hello"),
		"b": {0x00, 0xff, 0x10, 0x02},
		"c": []byte(""),
	}
	seed(t, env, "src", want)

	var buf bytes.Buffer
	require.NoError(t, Export(env, "src", FormatText, &buf, nil))

	n, err := Import(env, "dst", FormatText, &buf, nil)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	txn, err := store.BeginRead(env)
	require.NoError(t, err)
	defer txn.Abort()
	for k, v := range want {
		got, err := store.Get(env, txn, "dst", k)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestExportImportTabularRoundTrip(t *testing.T) {
	env := openTemp(t)
	want := map[string][]byte{
		"x": []byte("one"),
		"y": []byte("two, with a comma"),
	}
	seed(t, env, "src", want)

	var buf bytes.Buffer
	require.NoError(t, Export(env, "src", FormatTabular, &buf, nil))

	n, err := Import(env, "dst", FormatTabular, &buf, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	txn, err := store.BeginRead(env)
	require.NoError(t, err)
	defer txn.Abort()
	for k, v := range want {
		got, err := store.Get(env, txn, "dst", k)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestImportReportsProgress(t *testing.T) {
	env := openTemp(t)
	seed(t, env, "src", map[string][]byte{"a": []byte("1"), "b": []byte("2")})

	var buf bytes.Buffer
	require.NoError(t, Export(env, "src", FormatText, &buf, nil))

	var calls []int
	_, err := Import(env, "dst", FormatText, &buf, func(done, _ int) {
		calls = append(calls, done)
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, calls)
}
