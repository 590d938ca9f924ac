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

// Package undo implements the Undo Log component (spec.md §4.7): a
// per-session, linear history of inverse operations that lets the
// explorer step backward and forward through a sequence of edits
// without re-deriving them from the underlying space.
package undo

import "github.com/nibzard/lmdb-tui/store"

// opKind distinguishes a put-inverse from a delete-inverse. Both are
// undone as "the value to restore", so Undo applies either kind through
// one code path (restore); Redo switches on the kind (spec.md §4.7:
// "an undo record is fully self-describing").
type opKind int

const (
	opPut opKind = iota
	opDelete
)

// op is one undo record: applying it restores space/key to prev (on
// Undo) or re-applies the edit that kind and newValue describe (on
// Redo).
type op struct {
	kind     opKind
	space    string
	key      string
	prev     []byte // value before the edit; nil means the key was absent
	hadPrev  bool
	newValue []byte // value after the edit; unused for opDelete's redo (delete again)
}

// Log is a linear undo/redo history. It implements store.Recorder so
// store.Put and store.Delete can append to it directly. Log is not
// safe for concurrent use — spec.md's single-writer rule means at
// most one write transaction, and therefore at most one mutating
// caller, is ever recording at a time.
type Log struct {
	ops []op
	pos int // index of the next redo-able op; ops[:pos] are undo-able
}

// NewLog returns an empty undo history.
func NewLog() *Log {
	return &Log{}
}

// RecordPut implements store.Recorder. Recording a new edit discards
// any previously undone (now stale) redo tail, matching the ordinary
// editor convention spec.md §4.7 describes.
func (l *Log) RecordPut(space, key string, prev []byte, newValue []byte) {
	l.append(op{kind: opPut, space: space, key: key, prev: prev, hadPrev: prev != nil, newValue: newValue})
}

// RecordDelete implements store.Recorder.
func (l *Log) RecordDelete(space, key string, prev []byte) {
	l.append(op{kind: opDelete, space: space, key: key, prev: prev, hadPrev: prev != nil})
}

func (l *Log) append(o op) {
	l.ops = append(l.ops[:l.pos], o)
	l.pos++
}

// CanUndo reports whether Undo would apply an inverse.
func (l *Log) CanUndo() bool { return l.pos > 0 }

// CanRedo reports whether Redo would re-apply a previously undone edit.
func (l *Log) CanRedo() bool { return l.pos < len(l.ops) }

// Undo applies the inverse of the most recent not-yet-undone edit
// within txn, a fresh write transaction the caller owns (spec.md P5:
// undo(redo(x)) == x, and undoing to the origin restores the
// original state exactly). Undo does not itself append a new record.
func (l *Log) Undo(env *store.Env, txn *store.Txn) error {
	if !l.CanUndo() {
		return nil
	}
	o := l.ops[l.pos-1]
	// The cursor only moves once the inverse has actually applied
	// (spec.md §4.7: "if the inverse fails mid-application... the
	// cursor is not advanced").
	if err := restore(env, txn, o.space, o.key, o.prev, o.hadPrev); err != nil {
		return err
	}
	l.pos--
	return nil
}

// Redo re-applies the most recently undone edit within txn.
func (l *Log) Redo(env *store.Env, txn *store.Txn) error {
	if !l.CanRedo() {
		return nil
	}
	o := l.ops[l.pos]
	var err error
	switch o.kind {
	case opPut:
		err = store.Put(env, txn, o.space, o.key, o.newValue, nil)
	default:
		err = store.Delete(env, txn, o.space, o.key, nil)
	}
	if err != nil {
		return err
	}
	l.pos++
	return nil
}

// restore writes prev back (or deletes the key, if it had no prior
// value) without going through Log itself — undo/redo application is
// not itself undo-able history, it is the traversal of existing
// history.
func restore(env *store.Env, txn *store.Txn, space, key string, prev []byte, hadPrev bool) error {
	if !hadPrev {
		return store.Delete(env, txn, space, key, nil)
	}
	return store.Put(env, txn, space, key, prev, nil)
}
