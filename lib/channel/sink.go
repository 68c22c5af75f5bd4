// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import "time"

// Message is one decoded frame as handed to the collector's output.
type Message struct {
	// Text is the frame payload without its terminator.
	Text string

	// ReceivedAt is when the reader task completed the frame.
	ReceivedAt time.Time

	// PeerPID is the sending process id when the platform reports
	// socket peer credentials, zero otherwise.
	PeerPID int32
}

// Sink consumes published messages. Publish is called concurrently
// from every reader goroutine and must be safe for concurrent use. It
// should return quickly: a slow sink holds its reader goroutine (not
// the accept loop) until it returns.
type Sink interface {
	Publish(Message)
}

// SinkFunc adapts a function literal to the Sink interface.
type SinkFunc func(Message)

// Publish calls the underlying function.
func (f SinkFunc) Publish(message Message) {
	f(message)
}
