// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"log/slog"

	"github.com/bureau-foundation/hookrelay/lib/channel"
)

// Fanout publishes every message to each sink in order.
type Fanout []channel.Sink

func (f Fanout) Publish(message channel.Message) {
	for _, sink := range f {
		sink.Publish(message)
	}
}

// Log publishes messages as structured log records at info level. It
// is the collector's output when a machine reads its stderr.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log sink writing to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Publish(message channel.Message) {
	l.logger.Info("relayed message",
		"text", message.Text,
		"peer_pid", message.PeerPID,
		"received_at", message.ReceivedAt,
	)
}
