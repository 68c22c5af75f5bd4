// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/testutil"
)

// collectingSink forwards every published message onto a buffered
// channel for the test to receive.
type collectingSink struct {
	messages chan Message
}

func newCollectingSink() *collectingSink {
	return &collectingSink{messages: make(chan Message, 1024)}
}

func (c *collectingSink) Publish(message Message) {
	c.messages <- message
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testEndpointPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(testutil.SocketDir(t), "relay.sock")
}

// startServer runs a server on a fresh endpoint until the test ends
// and returns it once it is listening.
func startServer(t *testing.T, sink Sink, options ServerOptions) *Server {
	t.Helper()
	if options.Logger == nil {
		options.Logger = testLogger()
	}
	server := NewServer(testEndpointPath(t), sink, options)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for Serve to return"); err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")
	return server
}
