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

// Package kverrors defines the error taxonomy shared by every core
// package. Errors carry a Kind so that callers — CLI adapters in
// particular — can map a failure onto an exit code or a user-facing
// message without string-matching.
package kverrors

import (
	"errors"
	"fmt"
)

// Kind tags an Error with one of the categories the core distinguishes.
// It is a plain enum, not a family of error types, so that a single
// Error value can be compared with errors.Is against a sentinel and
// switched on its Kind when finer handling is needed.
type Kind int

const (
	// Unknown is the zero value and should never be returned to a caller.
	Unknown Kind = iota
	// NotFound covers a missing path, space, or key.
	NotFound
	// PermissionDenied covers an unreadable or unwritable path.
	PermissionDenied
	// ReadOnlyEnv is returned when a write is attempted on a read-only Env.
	ReadOnlyEnv
	// WriterBusy is returned when a second writer transaction is attempted.
	WriterBusy
	// BadQuery is returned when the query parser rejects its input.
	BadQuery
	// BadRegex is a BadQuery subcase for a regex that fails to compile.
	BadRegex
	// Undecodable is returned when the value codec exhausts every decoder.
	Undecodable
	// Corruption is returned when the store reports a structural problem.
	Corruption
	// StorageError is the catch-all for I/O and store errors not covered above.
	StorageError
	// TooManySpaces is returned when creating a space would exceed Env.MaxSpaces.
	TooManySpaces
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case PermissionDenied:
		return "permission_denied"
	case ReadOnlyEnv:
		return "read_only_env"
	case WriterBusy:
		return "writer_busy"
	case BadQuery:
		return "bad_query"
	case BadRegex:
		return "bad_regex"
	case Undecodable:
		return "undecodable"
	case Corruption:
		return "corruption"
	case StorageError:
		return "storage_error"
	case TooManySpaces:
		return "too_many_spaces"
	default:
		return "unknown"
	}
}

// Error is the concrete error value returned by core packages.
type Error struct {
	Kind   Kind
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, kverrors.ErrNotFound) style checks: it
// reports whether target is a *Error of the same Kind, whatever either
// side's Msg or Cause, so the package-level sentinels below match any
// error of their Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given Kind wrapping cause (which may be nil).
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Sentinels for errors.Is comparisons against a bare Kind, e.g.
// errors.Is(err, kverrors.ErrNotFound).
var (
	ErrNotFound         = &Error{Kind: NotFound}
	ErrPermissionDenied = &Error{Kind: PermissionDenied}
	ErrReadOnlyEnv      = &Error{Kind: ReadOnlyEnv}
	ErrWriterBusy       = &Error{Kind: WriterBusy}
	ErrBadQuery         = &Error{Kind: BadQuery}
	ErrBadRegex         = &Error{Kind: BadRegex}
	ErrUndecodable      = &Error{Kind: Undecodable}
	ErrCorruption       = &Error{Kind: Corruption}
	ErrStorageError     = &Error{Kind: StorageError}
	ErrTooManySpaces    = &Error{Kind: TooManySpaces}
)

// SpaceNotFound builds the NotFound error for a missing space name.
func SpaceNotFound(name string) *Error {
	return New(NotFound, fmt.Sprintf("space %q not found", name), nil)
}

// TooManySpacesErr builds the TooManySpaces error for an environment
// that has reached its configured space ceiling.
func TooManySpacesErr(max int) *Error {
	return New(TooManySpaces, fmt.Sprintf("environment already has the maximum of %d spaces", max), nil)
}

// KeyOf reports the Kind of err if err is (or wraps) a *Error, and
// Unknown otherwise.
func KeyOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// ExitCode maps a Kind onto the process exit codes described in §6/§7
// of the specification: 0 success, 1 generic failure, 2 path not
// found, 3 permission denied.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KeyOf(err) {
	case NotFound:
		return 2
	case PermissionDenied:
		return 3
	default:
		return 1
	}
}
