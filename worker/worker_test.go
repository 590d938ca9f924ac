package worker

import (
	"path/filepath"
	"testing"
	"time"

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

func awaitResult(t *testing.T, w *Worker) Result {
	t.Helper()
	select {
	case r := <-w.Results():
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a result")
		return Result{}
	}
}

func TestSubmitEnvStatsProducesResult(t *testing.T) {
	env := openTemp(t)
	w := New(env)
	defer w.Close()

	w.Submit(Request{Kind: RequestEnv})
	r := awaitResult(t, w)
	require.Equal(t, RequestEnv, r.Kind)
	require.Equal(t, store.DefaultMaxReaders, r.EnvStats.MaxReaders)
}

func TestSubmitSpaceStatsProducesResult(t *testing.T) {
	env := openTemp(t)
	txn, err := store.BeginWrite(env)
	require.NoError(t, err)
	require.NoError(t, store.Put(env, txn, "s", "k", []byte("v"), nil))
	require.NoError(t, txn.Commit())

	w := New(env)
	defer w.Close()

	w.Submit(Request{Kind: RequestSpace, Space: "s"})
	r := awaitResult(t, w)
	require.Equal(t, RequestSpace, r.Kind)
	require.Equal(t, "s", r.Space)
	require.Equal(t, 1, r.SpaceStats.Entries)
}

// TestResultsArriveByCompletionNotRequestOrder is spec.md §4.8's
// ordering guarantee: results are keyed by identity (Kind/Space), not
// position, so a consumer must not assume request order.
func TestResultsArriveByCompletionNotRequestOrder(t *testing.T) {
	env := openTemp(t)
	for _, space := range []string{"a", "b", "c"} {
		txn, err := store.BeginWrite(env)
		require.NoError(t, err)
		require.NoError(t, store.Put(env, txn, space, "k", []byte("v"), nil))
		require.NoError(t, txn.Commit())
	}

	w := New(env)
	defer w.Close()

	w.Submit(Request{Kind: RequestSpace, Space: "a"})
	w.Submit(Request{Kind: RequestSpace, Space: "b"})
	w.Submit(Request{Kind: RequestSpace, Space: "c"})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		r := awaitResult(t, w)
		require.Equal(t, RequestSpace, r.Kind)
		seen[r.Space] = true
	}
	require.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}

func TestUnknownSpaceLogsAndDropsRatherThanPropagating(t *testing.T) {
	env := openTemp(t)
	w := New(env)
	defer w.Close()

	w.Submit(Request{Kind: RequestSpace, Space: "does-not-exist"})
	w.Submit(Request{Kind: RequestEnv})

	// The space-stats failure never reaches Results (spec.md §7: the
	// Stats Worker never propagates, only logs and drops); the
	// subsequent env-stats request still completes normally.
	r := awaitResult(t, w)
	require.Equal(t, RequestEnv, r.Kind)

	select {
	case extra := <-w.Results():
		t.Fatalf("unexpected extra result: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCloseIsIdempotentAndStopsAcceptingWork(t *testing.T) {
	env := openTemp(t)
	w := New(env)
	w.Close()
	w.Close()

	w.Submit(Request{Kind: RequestEnv})
	select {
	case r := <-w.Results():
		t.Fatalf("unexpected result after Close: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}
