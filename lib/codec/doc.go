// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides hookrelay's shared CBOR encoding configuration.
//
// The channel wire format is plain NUL-terminated text (see lib/frame)
// and never touches CBOR. CBOR is used for on-disk state: the relay
// archive writes one CBOR record per published line into a compressed
// stream, and the replay tool decodes the same stream.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(writer)
//	decoder := codec.NewDecoder(reader)
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same record always produces identical bytes.
package codec
