package query

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nibzard/lmdb-tui/store"
)

func openTemp(t *testing.T) *store.Env {
	t.Helper()
	dir := t.TempDir()
	env, err := store.Open(filepath.Join(dir, "env.db"), store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })
	return env
}

func seed(t *testing.T, env *store.Env, space string, kvs map[string]string) {
	t.Helper()
	txn, err := store.BeginWrite(env)
	require.NoError(t, err)
	for k, v := range kvs {
		require.NoError(t, store.Put(env, txn, space, k, []byte(v), nil))
	}
	require.NoError(t, txn.Commit())
}

func TestParseQueryDispatch(t *testing.T) {
	m, err := ParseQuery("prefix user:")
	require.NoError(t, err)
	require.Equal(t, KindPrefix, m.Kind)
	require.Equal(t, "user:", m.Prefix)

	m, err = ParseQuery("range a..m")
	require.NoError(t, err)
	require.Equal(t, KindRange, m.Kind)
	require.Equal(t, "a", m.Lo)
	require.Equal(t, "m", m.Hi)

	m, err = ParseQuery("regex ^user:[0-9]+$")
	require.NoError(t, err)
	require.Equal(t, KindRegex, m.Kind)
	require.True(t, m.Regex.MatchString("user:42"))

	m, err = ParseQuery("jsonpath $.active")
	require.NoError(t, err)
	require.Equal(t, KindValuePath, m.Kind)
	require.Equal(t, "$.active", m.Path)

	m, err = ParseQuery("bare-text")
	require.NoError(t, err)
	require.Equal(t, KindPrefix, m.Kind)
	require.Equal(t, "bare-text", m.Prefix)

	_, err = ParseQuery("   ")
	require.Error(t, err)
}

// TestPrefixEarlyTermination is boundary scenario 1: once the ordered
// cursor passes every key sharing the prefix, the scan stops without
// visiting the remainder of the space.
func TestPrefixEarlyTermination(t *testing.T) {
	env := openTemp(t)
	seed(t, env, "s", map[string]string{
		"user:1": "a",
		"user:2": "b",
		"user:3": "c",
		"zzz:1":  "d",
	})

	got, err := Page(env, "s", Mode{Kind: KindPrefix, Prefix: "user:"}, 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, e := range got {
		require.True(t, len(e.Key) >= 5 && e.Key[:5] == "user:")
	}
}

// TestRangeHalfOpen is boundary scenario 2: the upper bound is
// excluded.
func TestRangeHalfOpen(t *testing.T) {
	env := openTemp(t)
	seed(t, env, "s", map[string]string{
		"a": "1", "b": "2", "c": "3", "m": "4", "z": "5",
	})

	got, err := Page(env, "s", Mode{Kind: KindRange, Lo: "a", Hi: "m"}, 0, 100)
	require.NoError(t, err)
	keys := map[string]bool{}
	for _, e := range got {
		keys[e.Key] = true
	}
	require.True(t, keys["a"])
	require.True(t, keys["b"])
	require.True(t, keys["c"])
	require.False(t, keys["m"])
	require.False(t, keys["z"])
}

func TestValuePathMatchesDecodedStructure(t *testing.T) {
	env := openTemp(t)
	seed(t, env, "s", map[string]string{
		"u1": `{"active":true}`,
		"u2": `{"active":false}`,
		"u3": `not json`,
	})

	got, err := Page(env, "s", Mode{Kind: KindValuePath, Path: "$.active"}, 0, 100)
	require.NoError(t, err)
	keys := map[string]bool{}
	for _, e := range got {
		keys[e.Key] = true
	}
	require.True(t, keys["u1"])
	require.True(t, keys["u2"])
	require.False(t, keys["u3"])
}

// TestCountMatchesPageLength is P3: count(mode) equals the total
// number of entries Page would eventually yield across all offsets.
func TestCountMatchesPageLength(t *testing.T) {
	env := openTemp(t)
	kvs := map[string]string{}
	for i := 0; i < 157; i++ {
		kvs[keyN(i)] = "v"
	}
	seed(t, env, "s", kvs)

	n, err := Count(env, "s", Mode{Kind: KindPrefix, Prefix: ""})
	require.NoError(t, err)
	require.Equal(t, 157, n)

	all, err := Page(env, "s", Mode{Kind: KindPrefix, Prefix: ""}, 0, n+1)
	require.NoError(t, err)
	require.Len(t, all, n)
}

// TestPaginationIsExhaustiveAndNonOverlapping is P4 / boundary
// scenario 6: walking fixed-size pages over an odd-sized space visits
// every entry exactly once.
func TestPaginationIsExhaustiveAndNonOverlapping(t *testing.T) {
	env := openTemp(t)
	kvs := map[string]string{}
	for i := 0; i < 157; i++ {
		kvs[keyN(i)] = "v"
	}
	seed(t, env, "s", kvs)

	seen := map[string]int{}
	const pageSize = 20
	for offset := 0; ; offset += pageSize {
		page, err := Page(env, "s", Mode{Kind: KindPrefix, Prefix: ""}, offset, pageSize)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, e := range page {
			seen[e.Key]++
		}
	}
	require.Len(t, seen, 157)
	for k, count := range seen {
		require.Equalf(t, 1, count, "key %s visited %d times", k, count)
	}
}

func keyN(i int) string {
	return string(rune('a'+(i%26))) + "-" + strconv.Itoa(i)
}
