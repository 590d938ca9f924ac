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

// Package codec implements the Value Codec / Plugin Registry component
// (spec.md §4.3): best-effort structural decoding of a raw value so
// the Scanner can evaluate ValuePath queries and the TUI/export layer
// can render structured previews, without ever requiring a value to
// declare its own format.
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nibzard/lmdb-tui/kverrors"
)

// Format names the decoder that successfully produced a Value.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatPlugin  Format = "plugin"
)

// Value is a successfully decoded raw value: Data is the generic
// structural representation (maps, slices, scalars), Format records
// which decoder produced it (spec.md P8: decoder precedence is
// observable, not just internal bookkeeping).
type Value struct {
	Format Format
	Data   interface{}
}

// Decode tries each registered decoder in a fixed precedence —
// built-in JSON, then built-in msgpack, then plugins in registration
// order (spec.md §4.3, P8) — and returns the first success. A value
// that matches no decoder is Undecodable; ValuePath queries treat
// that as a permanent non-match rather than an error (spec.md §4.5).
func Decode(raw []byte) (Value, error) {
	var asJSON interface{}
	if err := json.Unmarshal(raw, &asJSON); err == nil {
		return Value{Format: FormatJSON, Data: asJSON}, nil
	}

	if v, ok := decodeMsgpack(raw); ok {
		return Value{Format: FormatMsgpack, Data: v}, nil
	}

	for _, p := range plugins() {
		if v, ok := p.TryDecode(raw); ok {
			return Value{Format: FormatPlugin, Data: v}, nil
		}
	}

	return Value{}, kverrors.New(kverrors.Undecodable, "value matches no registered decoder", nil)
}

// decodeMsgpack requires the whole buffer to be consumed by a single
// value: msgpack's type tags cover most byte values, so accepting a
// partial decode would misclassify plain text and binary noise alike
// as msgpack (see decode_test.go).
func decodeMsgpack(raw []byte) (interface{}, bool) {
	r := bytes.NewReader(raw)
	dec := msgpack.NewDecoder(r)
	v, err := dec.DecodeInterface()
	if err != nil || r.Len() != 0 {
		return nil, false
	}
	return v, true
}
