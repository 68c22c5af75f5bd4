// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame defines how one relay message is laid out on the
// channel: the UTF-8 text followed by a single terminator byte. There
// is no length prefix, version field or acknowledgement.
//
// A receiver treats everything before the first terminator in its read
// buffer as the complete payload. Frames must fit in [BufferSize] bytes
// including the terminator; receivers do not reassemble longer frames.
package frame

import (
	"bytes"
	"errors"
	"strings"
)

// Terminator marks the end of a frame on the wire.
const Terminator byte = 0

// BufferSize is the capacity of a receiver's read buffer. A frame whose
// terminator does not fall within the first BufferSize bytes of a
// connection is over-length.
const BufferSize = 8192

// ErrEmbeddedTerminator is returned by Encode when the text already
// contains a terminator byte. The text is rejected rather than
// stripped, since a stripped frame would silently change the message.
var ErrEmbeddedTerminator = errors.New("frame: text contains an embedded terminator byte")

// Encode returns the UTF-8 bytes of text followed by the terminator.
func Encode(text string) ([]byte, error) {
	if strings.IndexByte(text, Terminator) >= 0 {
		return nil, ErrEmbeddedTerminator
	}
	encoded := make([]byte, len(text)+1)
	copy(encoded, text)
	encoded[len(text)] = Terminator
	return encoded, nil
}

// Decode looks for a terminator in the first n bytes of buffer. If one
// is found at position k, it returns the text of buffer[:k] and
// complete=true; bytes after the terminator are ignored. Otherwise it
// returns the text of all n bytes and complete=false.
//
// Invalid UTF-8 is replaced with U+FFFD rather than reported: a
// corrupted frame still yields a line. n is clamped to [0, len(buffer)].
func Decode(buffer []byte, n int) (text string, complete bool) {
	if n < 0 {
		n = 0
	}
	if n > len(buffer) {
		n = len(buffer)
	}
	valid := buffer[:n]
	if k := bytes.IndexByte(valid, Terminator); k >= 0 {
		return strings.ToValidUTF8(string(valid[:k]), "�"), true
	}
	return strings.ToValidUTF8(string(valid), "�"), false
}
