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

// Package query implements the textual query grammar (spec.md §4.4)
// and the Scanner that executes a parsed Mode against a space with
// ordered early-termination scans, accurate counting, and
// offset/limit pagination (spec.md §4.5).
package query

import "regexp"

// Kind tags which predicate shape a Mode holds.
type Kind int

const (
	KindPrefix Kind = iota
	KindRange
	KindRegex
	KindValuePath
)

// Mode is a parsed predicate descriptor. It is a plain struct —
// cheap to copy and pass by value, as spec.md §3 requires — rather
// than an interface, since the set of shapes is closed and small.
type Mode struct {
	Kind Kind

	Prefix string // KindPrefix

	Lo, Hi string // KindRange: half-open [Lo, Hi)

	Regex *regexp.Regexp // KindRegex

	Path string // KindValuePath: a JSONPath expression
}
