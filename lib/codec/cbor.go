// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Archives are read back long after they were written, possibly by a
// different build. The decoder is strict about malformed input and
// lenient about fields it does not know.
var (
	encoding = must(cbor.CoreDetEncOptions().EncMode())

	decoding = must(cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: 16,
	}.DecMode())
)

func must[M any](mode M, err error) M {
	if err != nil {
		panic("codec: building CBOR mode: " + err.Error())
	}
	return mode
}

// Encoder and Decoder alias the cbor stream types so archive code
// depends on this package alone.
type (
	Encoder = cbor.Encoder
	Decoder = cbor.Decoder
)

// Marshal encodes v with core deterministic encoding, so equal records
// always produce equal bytes.
func Marshal(v any) ([]byte, error) { return encoding.Marshal(v) }

// Unmarshal decodes one CBOR item from data into v. Duplicate map keys
// are rejected.
func Unmarshal(data []byte, v any) error { return decoding.Unmarshal(data, v) }

// NewEncoder writes a sequence of CBOR items to w.
func NewEncoder(w io.Writer) *Encoder { return encoding.NewEncoder(w) }

// NewDecoder reads a sequence of CBOR items from r. Decode returns
// io.EOF once r is exhausted between items.
func NewDecoder(r io.Reader) *Decoder { return decoding.NewDecoder(r) }
