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

package query

import (
	"regexp"
	"strings"

	"github.com/nibzard/lmdb-tui/kverrors"
)

// ParseQuery parses the textual query grammar (spec.md §4.4) into a
// Mode. It is a literal keyword-dispatch state machine with no
// backtracking, mirroring the teacher's own tag-dispatch style
// (kv.Label.String() in fenghaojiang-erigon-lib/kv/kv_interface.go):
//
//	query      := "prefix " rest
//	            | "range "  range-body
//	            | "regex "  regex-body
//	            | "jsonpath " path-body
//	            | rest                  # default: prefix over entire input
//	range-body := key ".." key
//	            |  key WS key
func ParseQuery(input string) (Mode, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Mode{}, kverrors.New(kverrors.BadQuery, "empty query", nil)
	}

	if rest, ok := strip(trimmed, "prefix "); ok {
		return Mode{Kind: KindPrefix, Prefix: rest}, nil
	}
	if rest, ok := strip(trimmed, "range "); ok {
		lo, hi, err := parseRangeBody(rest)
		if err != nil {
			return Mode{}, err
		}
		return Mode{Kind: KindRange, Lo: lo, Hi: hi}, nil
	}
	if rest, ok := strip(trimmed, "regex "); ok {
		re, err := regexp.Compile(rest)
		if err != nil {
			return Mode{}, kverrors.New(kverrors.BadRegex, "invalid regex", err)
		}
		return Mode{Kind: KindRegex, Regex: re}, nil
	}
	if rest, ok := strip(trimmed, "jsonpath "); ok {
		return Mode{Kind: KindValuePath, Path: rest}, nil
	}

	return Mode{Kind: KindPrefix, Prefix: trimmed}, nil
}

func strip(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}

func parseRangeBody(rest string) (lo, hi string, err error) {
	if i := strings.Index(rest, ".."); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+2:]), nil
	}
	parts := strings.Fields(rest)
	if len(parts) != 2 {
		return "", "", kverrors.New(kverrors.BadQuery, "invalid range", nil)
	}
	return parts[0], parts[1], nil
}
