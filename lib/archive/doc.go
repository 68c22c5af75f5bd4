// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive records relayed messages to a compressed file and
// reads them back for replay.
//
// An archive is a single compressed stream (zstd or lz4 frame format)
// containing a sequence of CBOR-encoded [Record] values. The stream is
// flushed after every record, so an archive whose writer was killed is
// readable up to the last complete record. Readers detect the
// compression from the stream's magic bytes.
package archive
