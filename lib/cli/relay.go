// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/hookrelay/lib/archive"
	"github.com/bureau-foundation/hookrelay/lib/channel"
	"github.com/bureau-foundation/hookrelay/lib/config"
	"github.com/bureau-foundation/hookrelay/lib/sink"
)

// EndpointPath resolves the configured endpoint to a socket path. A
// non-empty override replaces the configured name.
func EndpointPath(cfg *config.Config, override string) (string, error) {
	name := cfg.Endpoint.Name
	if override != "" {
		name = override
	}
	path, err := channel.ResolvePath(name, cfg.Endpoint.RuntimeDir)
	if err != nil {
		return "", fmt.Errorf("resolving endpoint: %w", err)
	}
	return path, nil
}

// NewClient returns a channel client using the configured retry policy.
func NewClient(cfg *config.Config, path string) *channel.Client {
	return channel.NewClient(path, channel.ClientOptions{
		Attempts:     cfg.Client.Attempts,
		Wait:         cfg.Client.Wait,
		WriteTimeout: cfg.Client.WriteTimeout,
	})
}

// NewServer returns a channel server using the configured limits.
func NewServer(cfg *config.Config, path string, output channel.Sink, logger *slog.Logger) *channel.Server {
	return channel.NewServer(path, output, channel.ServerOptions{
		ReadTimeout: cfg.Server.ReadTimeout,
		MaxReaders:  cfg.Server.MaxReaders,
		Logger:      logger,
	})
}

// NewCollectorSink builds the collector's output: the console, plus
// the archive when one is configured. Close the returned closer after
// the server has drained.
func NewCollectorSink(cfg *config.Config, console io.Writer, logger *slog.Logger) (channel.Sink, io.Closer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	color, err := sink.ParseColorMode(cfg.Console.Color)
	if err != nil {
		return nil, nil, err
	}
	output := sink.NewConsole(console, color)
	if cfg.Archive.Path == "" {
		return output, nopCloser{}, nil
	}

	compression, err := archive.ParseCompression(cfg.Archive.Compression)
	if err != nil {
		return nil, nil, err
	}
	writer, err := archive.Create(cfg.Archive.Path, compression, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("archiving relayed messages", "path", cfg.Archive.Path, "compression", string(compression))
	return sink.Fanout{output, writer}, writer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Relay is the collector's running listener together with the sink it
// publishes to.
type Relay struct {
	server *channel.Server
	output io.Closer
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan error

	shutdownOnce sync.Once
	shutdownErr  error
}

// StartRelay builds the collector sink and starts a server on the
// endpoint at path, returning once it is listening. Losing the
// first-instance claim yields channel.ErrEndpointInUse with the sink
// already closed.
func StartRelay(cfg *config.Config, path string, console io.Writer, logger *slog.Logger) (*Relay, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	output, closer, err := NewCollectorSink(cfg, console, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	relay := &Relay{
		server: NewServer(cfg, path, output, logger.With("component", "server")),
		output: closer,
		logger: logger,
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go func() {
		relay.done <- relay.server.Serve(ctx)
	}()

	select {
	case <-relay.server.Ready():
		return relay, nil
	case err := <-relay.done:
		cancel()
		relay.closeOutput()
		return nil, err
	}
}

// Path returns the endpoint socket path.
func (r *Relay) Path() string {
	return r.server.Path()
}

// Shutdown stops accepting, waits for every reader to finish publishing
// and only then closes the sink. It is safe to call more than once.
func (r *Relay) Shutdown() error {
	r.shutdownOnce.Do(func() {
		r.cancel()
		serveErr := <-r.done
		r.shutdownErr = errors.Join(serveErr, r.closeOutput())
	})
	return r.shutdownErr
}

func (r *Relay) closeOutput() error {
	if err := r.output.Close(); err != nil {
		r.logger.Error("closing relay output", "error", err)
		return fmt.Errorf("closing relay output: %w", err)
	}
	return nil
}
