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

// Package worker implements the Stats Worker component (spec.md §4.8):
// a dedicated background goroutine that computes environment- and
// space-level statistics on request, off the foreground thread, and
// reports them back over a channel rather than a shared getter.
package worker

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	logpkg "github.com/ledgerwatch/log/v3"

	"github.com/nibzard/lmdb-tui/store"
)

// DefaultConcurrency bounds how many stats jobs run at once.
const DefaultConcurrency = 4

// DefaultPollInterval is a suggested interval for an adapter's own
// foreground loop to drain Results; the worker never sleeps on it.
const DefaultPollInterval = 200 * time.Millisecond

// resultBuffer is the result channel's buffer, sized generously so the
// common case (a handful of requests in flight) never needs the
// spawn-a-sender fallback in sendResult.
const resultBuffer = 64

// RequestKind selects which job a Request asks for (spec.md §4.8:
// "Request ∈ {Env, Space(name)}").
type RequestKind int

const (
	RequestEnv RequestKind = iota
	RequestSpace
)

// Request is one unit of work submitted to the worker.
type Request struct {
	Kind  RequestKind
	Space string // set when Kind == RequestSpace
}

// Result is one completed job (spec.md §4.8: "Result ∈ {Env(EnvStats),
// Space(name, SpaceStats)}"). Results arrive in completion order, not
// request order — callers key a refresh by Kind/Space, not by when
// they asked.
type Result struct {
	Kind       RequestKind
	Space      string
	EnvStats   store.EnvStats
	SpaceStats store.SpaceStats
}

// Worker runs one dedicated background goroutine that receives
// Requests and emits Results. Submit after Close drops the request.
// Like the rest of the core, the worker assumes a single foreground
// caller driving Submit and Close serially (spec.md §5's two-thread
// model — T1 submits and drains, T2 computes).
type Worker struct {
	env *store.Env
	sem *semaphore.Weighted

	reqCh    chan Request
	resultCh chan Result

	stopped atomic.Bool
}

// New starts the worker's background goroutine over env and returns
// immediately, mirroring the original job queue's own
// spawn-on-construction lifecycle (original_source/src/jobs/mod.rs's
// JobQueue::new).
func New(env *store.Env) *Worker {
	w := &Worker{
		env:      env,
		sem:      semaphore.NewWeighted(DefaultConcurrency),
		reqCh:    make(chan Request),
		resultCh: make(chan Result, resultBuffer),
	}
	go w.run()
	return w
}

// Submit enqueues a request. It never blocks the caller: if the
// request can't be handed off immediately, it is sent through a
// short-lived goroutine instead, approximating the spec's unbounded
// request channel without an actual unbounded buffer (spec.md §4.8).
func (w *Worker) Submit(req Request) {
	if w.stopped.Load() {
		return
	}
	select {
	case w.reqCh <- req:
	default:
		go func() {
			defer func() { recover() }() // reqCh may close concurrently with Close
			w.reqCh <- req
		}()
	}
}

// Results is the channel of completed jobs. Consumers drain it with a
// non-blocking `select ... default:` (spec.md §6), never blocking the
// foreground waiting for a stats refresh.
func (w *Worker) Results() <-chan Result {
	return w.resultCh
}

// Close stops accepting requests by closing the request channel and
// returns at once; it does not wait for the background goroutine,
// which lets in-flight jobs finish and then exits on its own. It is
// idempotent. Without Close the request channel stays open and the
// background goroutine keeps waiting for requests.
func (w *Worker) Close() {
	if w.stopped.CompareAndSwap(false, true) {
		close(w.reqCh)
	}
}

// run is the dedicated background goroutine (spec.md §4.8's "a
// dedicated background thread runs a single-threaded cooperative
// scheduler"). Each job is handed to errgroup+semaphore so a slow
// computation cannot starve the scheduler loop, mirroring the
// teacher's own errgroup/semaphore pairing for bounding concurrent
// background work (state/aggregator_v3.go).
func (w *Worker) run() {
	var g errgroup.Group
	ctx := context.Background()
	for req := range w.reqCh {
		req := req
		if err := w.sem.Acquire(ctx, 1); err != nil {
			continue
		}
		g.Go(func() error {
			defer w.sem.Release(1)
			w.process(req)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *Worker) process(req Request) {
	switch req.Kind {
	case RequestSpace:
		stats, err := store.SpaceStatsFor(w.env, req.Space)
		if err != nil {
			logpkg.Warn("stats worker: space stats failed", "space", req.Space, "err", err)
			return
		}
		w.sendResult(Result{Kind: RequestSpace, Space: req.Space, SpaceStats: stats})
	default:
		stats, err := store.Stats(w.env)
		if err != nil {
			logpkg.Warn("stats worker: env stats failed", "err", err)
			return
		}
		w.sendResult(Result{Kind: RequestEnv, EnvStats: stats})
	}
}

// sendResult never blocks the background goroutine: once the buffer
// is full it hands the send to a short-lived goroutine (approximating
// the spec's unbounded result channel), unless the worker is already
// stopping, in which case the result is simply dropped — a result
// whose consumer is gone is meant to vanish silently (spec.md §4.8),
// not leak a goroutine waiting forever.
func (w *Worker) sendResult(r Result) {
	select {
	case w.resultCh <- r:
		return
	default:
	}
	if w.stopped.Load() {
		return
	}
	go func() {
		select {
		case w.resultCh <- r:
		case <-time.After(5 * time.Second):
		}
	}()
}
