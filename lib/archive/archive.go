// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/hookrelay/lib/channel"
	"github.com/bureau-foundation/hookrelay/lib/codec"
)

// Compression selects the archive stream format.
type Compression string

const (
	// CompressionZstd writes a zstd stream. Better ratio on text.
	CompressionZstd Compression = "zstd"

	// CompressionLZ4 writes an lz4 frame stream. Cheaper per record.
	CompressionLZ4 Compression = "lz4"
)

// ParseCompression parses a compression name. The empty string is zstd.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "", CompressionZstd:
		return CompressionZstd, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	default:
		return "", fmt.Errorf("unknown archive compression %q (want zstd or lz4)", name)
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ErrUnknownFormat is returned when a stream starts with neither the
// zstd nor the lz4 frame magic.
var ErrUnknownFormat = errors.New("archive: unrecognized stream format")

// Record is one archived message.
type Record struct {
	// Time is the receive time in Unix nanoseconds.
	Time int64 `cbor:"t"`

	// PID is the sending process id, or zero when unknown.
	PID int32 `cbor:"pid,omitempty"`

	// Text is the message payload.
	Text string `cbor:"text"`
}

// ReceivedAt returns Time as a time.Time.
func (r Record) ReceivedAt() time.Time {
	return time.Unix(0, r.Time)
}

// Message converts the record back into the form the collector
// publishes.
func (r Record) Message() channel.Message {
	return channel.Message{Text: r.Text, ReceivedAt: r.ReceivedAt(), PeerPID: r.PID}
}

// compressor is the subset of zstd.Encoder and lz4.Writer the writer
// uses.
type compressor interface {
	io.WriteCloser
	Flush() error
}

// Writer appends records to an archive stream. It implements
// channel.Sink; write failures are logged once and later records are
// discarded, since a sink cannot fail the relay.
type Writer struct {
	mu         sync.Mutex
	compressor compressor
	encoder    *codec.Encoder
	file       io.Closer
	logger     *slog.Logger
	records    uint64
	failed     error
	reported   bool
}

// Create truncates or creates the archive file at path.
func Create(path string, compression Compression, logger *slog.Logger) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	writer, err := NewWriter(file, compression, logger)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.file = file
	return writer, nil
}

// NewWriter returns a Writer that compresses into w. Closing the
// Writer does not close w.
func NewWriter(w io.Writer, compression Compression, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var stream compressor
	switch compression {
	case CompressionZstd, "":
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("archive: zstd writer: %w", err)
		}
		stream = encoder
	case CompressionLZ4:
		stream = lz4.NewWriter(w)
	default:
		return nil, fmt.Errorf("archive: unsupported compression %q", compression)
	}
	return &Writer{
		compressor: stream,
		encoder:    codec.NewEncoder(stream),
		logger:     logger,
	}, nil
}

// Append writes one record and flushes it to the underlying writer.
func (w *Writer) Append(record Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failed != nil {
		return w.failed
	}
	if err := w.encoder.Encode(record); err != nil {
		w.failed = fmt.Errorf("archive: encoding record: %w", err)
		return w.failed
	}
	if err := w.compressor.Flush(); err != nil {
		w.failed = fmt.Errorf("archive: flushing record: %w", err)
		return w.failed
	}
	w.records++
	return nil
}

// Publish archives a relayed message.
func (w *Writer) Publish(message channel.Message) {
	err := w.Append(Record{
		Time: message.ReceivedAt.UnixNano(),
		PID:  message.PeerPID,
		Text: message.Text,
	})
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.reported {
		w.reported = true
		w.logger.Error("archive write failed, discarding further records",
			"error", err,
			"archived", w.records,
		)
	}
}

// Records returns the number of records written.
func (w *Writer) Records() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.records
}

// Close finishes the compressed stream and closes the file if the
// Writer opened it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.compressor.Close()
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
		w.file = nil
	}
	if err != nil {
		return fmt.Errorf("archive: closing: %w", err)
	}
	return nil
}

// Reader decodes records from an archive stream.
type Reader struct {
	decoder *codec.Decoder
	close   func() error
}

// Open opens the archive file at path.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	inner := reader.close
	reader.close = func() error {
		return errors.Join(inner(), file.Close())
	}
	return reader, nil
}

// NewReader detects the stream compression and returns a Reader.
func NewReader(r io.Reader) (*Reader, error) {
	buffered := bufio.NewReader(r)
	magic, err := buffered.Peek(4)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: stream too short", ErrUnknownFormat)
		}
		return nil, fmt.Errorf("archive: reading header: %w", err)
	}

	switch {
	case bytes.Equal(magic, zstdMagic):
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("archive: zstd reader: %w", err)
		}
		return &Reader{
			decoder: codec.NewDecoder(decoder),
			close:   func() error { decoder.Close(); return nil },
		}, nil
	case bytes.Equal(magic, lz4Magic):
		return &Reader{
			decoder: codec.NewDecoder(lz4.NewReader(buffered)),
			close:   func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("%w: magic % x", ErrUnknownFormat, magic)
	}
}

// Next returns the next record, or io.EOF after the last one. A stream
// cut off mid-record returns io.ErrUnexpectedEOF.
func (r *Reader) Next() (Record, error) {
	var record Record
	if err := r.decoder.Decode(&record); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("archive: decoding record: %w", err)
	}
	return record, nil
}

// Close releases the decompressor and the file if Open created it.
func (r *Reader) Close() error {
	return r.close()
}
