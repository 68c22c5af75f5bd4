// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/clock"
	"github.com/bureau-foundation/hookrelay/lib/frame"
	"github.com/bureau-foundation/hookrelay/lib/netutil"
)

// DefaultReadTimeout is how long a reader goroutine waits for a peer
// to finish its frame. Well-behaved clients write immediately after
// connecting.
const DefaultReadTimeout = 30 * time.Second

// probeTimeout bounds the liveness probe made against an existing
// socket file before claiming the endpoint.
const probeTimeout = 250 * time.Millisecond

// ErrEndpointInUse is returned by Serve when another live server
// already owns the endpoint. It is fatal to the relay listener only.
var ErrEndpointInUse = errors.New("channel endpoint already owned by another server")

// ServerOptions configures a Server. Zero values select the defaults.
type ServerOptions struct {
	// ReadTimeout bounds how long one connection may take to deliver
	// its frame.
	ReadTimeout time.Duration

	// MaxReaders caps how many connections are read concurrently.
	// Zero means unbounded. The cap never delays acceptance: excess
	// connections are accepted and wait for a reader slot.
	MaxReaders int

	// Logger receives server diagnostics. Nil discards them.
	Logger *slog.Logger

	// Clock stamps Message.ReceivedAt. Defaults to clock.Real().
	Clock clock.Clock
}

// Stats are cumulative connection counters.
type Stats struct {
	// Accepted is the number of connections accepted.
	Accepted uint64

	// Published is the number of connections whose frame reached the sink.
	Published uint64

	// Dropped is the number of connections closed without publishing:
	// empty, unterminated, over-length, timed out, or failed reads.
	Dropped uint64
}

// Server accepts relay connections on an endpoint socket and publishes
// one message per connection to its sink.
type Server struct {
	path        string
	sink        Sink
	logger      *slog.Logger
	clock       clock.Clock
	readTimeout time.Duration
	readerSlots chan struct{}

	ready     chan struct{}
	readyOnce sync.Once

	accepted  atomic.Uint64
	published atomic.Uint64
	dropped   atomic.Uint64

	// activeConnections tracks reader goroutines so Serve can wait for
	// them before returning.
	activeConnections sync.WaitGroup
}

// NewServer creates a server for the endpoint socket at path. Nothing
// is opened until Serve.
func NewServer(path string, sink Sink, options ServerOptions) *Server {
	server := &Server{
		path:        path,
		sink:        sink,
		logger:      options.Logger,
		clock:       options.Clock,
		readTimeout: options.ReadTimeout,
		ready:       make(chan struct{}),
	}
	if server.logger == nil {
		server.logger = slog.New(slog.DiscardHandler)
	}
	if server.clock == nil {
		server.clock = clock.Real()
	}
	if server.readTimeout <= 0 {
		server.readTimeout = DefaultReadTimeout
	}
	if options.MaxReaders > 0 {
		server.readerSlots = make(chan struct{}, options.MaxReaders)
	}
	return server
}

// Path returns the endpoint socket path.
func (s *Server) Path() string {
	return s.path
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Stats returns a snapshot of the connection counters.
func (s *Server) Stats() Stats {
	return Stats{
		Accepted:  s.accepted.Load(),
		Published: s.published.Load(),
		Dropped:   s.dropped.Load(),
	}
}

// Serve claims the endpoint and accepts connections until ctx is
// cancelled. Each accepted connection is read by its own goroutine;
// the accept loop itself never reads, so the endpoint is always ready
// for the next peer. On cancellation Serve stops accepting, cuts off
// in-flight reads, waits for reader goroutines to exit, removes the
// socket file and returns nil.
//
// Serve returns ErrEndpointInUse if another server holds the endpoint
// lock file (<path>.lock) or already answers on the endpoint.
func (s *Server) Serve(ctx context.Context) error {
	lock, err := lockEndpoint(s.path)
	if err != nil {
		return err
	}
	defer lock.Close()

	listener, err := claimEndpoint(s.path)
	if err != nil {
		return err
	}
	// The socket is unlinked before the lock is released, so it can
	// only ever remove this server's own socket.
	defer func() {
		listener.Close()
		os.Remove(s.path)
	}()

	// Unblock Accept when the context is cancelled.
	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()

	s.logger.Info("relay endpoint listening", "path", s.path)
	s.readyOnce.Do(func() { close(s.ready) })

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "path", s.path, "error", err)
			continue
		}

		s.accepted.Add(1)
		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.activeConnections.Wait()
	s.logger.Info("relay endpoint closed", "path", s.path, "accepted", s.accepted.Load())
	return nil
}

// claimEndpoint makes this process the first and only instance of the
// endpoint. The caller must hold the endpoint lock, which serializes
// claims between servers. A socket file that still answers belongs to
// a live server and is left alone; one that refuses connections is
// stale and is replaced.
func claimEndpoint(path string) (net.Listener, error) {
	if probe, err := net.DialTimeout("unix", path, probeTimeout); err == nil {
		probe.Close()
		return nil, fmt.Errorf("%w: %s", ErrEndpointInUse, path)
	}

	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("endpoint path %s exists and is not a socket", path)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("removing stale endpoint %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking endpoint path %s: %w", path, err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s", ErrEndpointInUse, path)
		}
		return nil, fmt.Errorf("listening on %s: %w", path, err)
	}
	return listener, nil
}

// handleConnection is the reader task for one accepted connection. It
// reads into a single fixed buffer, decoding after every read, and
// publishes at most one message. A frame must complete within the
// buffer: a full buffer without a terminator is dropped.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	if s.readerSlots != nil {
		select {
		case s.readerSlots <- struct{}{}:
			defer func() { <-s.readerSlots }()
		case <-ctx.Done():
			s.dropped.Add(1)
			return
		}
	}

	// Cancellation interrupts a blocked Read through the deadline.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now()) //nolint:realclock socket deadline
	})
	defer stop()
	conn.SetReadDeadline(time.Now().Add(s.readTimeout)) //nolint:realclock socket deadline

	pid := peerPID(conn)
	buffer := make([]byte, frame.BufferSize)
	filled := 0
	for {
		n, err := conn.Read(buffer[filled:])
		filled += n
		if n > 0 {
			text, complete := frame.Decode(buffer, filled)
			if complete {
				s.publish(Message{Text: text, ReceivedAt: s.clock.Now(), PeerPID: pid})
				return
			}
			if filled == len(buffer) {
				s.dropped.Add(1)
				s.logger.Warn("dropping over-length frame",
					"path", s.path,
					"peer_pid", pid,
					"bytes", filled,
				)
				return
			}
		}
		if err != nil {
			s.dropped.Add(1)
			s.logReadEnd(err, pid, filled)
			return
		}
		// A zero-byte read with no error carries nothing; read again.
	}
}

func (s *Server) publish(message Message) {
	s.sink.Publish(message)
	s.published.Add(1)
}

// logReadEnd records why a connection ended without a frame. Peers
// that disconnect or go quiet are routine; anything else is a warning.
func (s *Server) logReadEnd(err error, pid int32, buffered int) {
	switch {
	case netutil.IsTimeout(err):
		s.logger.Debug("connection ended before frame completed",
			"path", s.path, "peer_pid", pid, "buffered", buffered, "reason", "deadline")
	case netutil.IsExpectedCloseError(err):
		s.logger.Debug("connection ended before frame completed",
			"path", s.path, "peer_pid", pid, "buffered", buffered, "reason", "closed")
	default:
		s.logger.Warn("reading relay connection failed",
			"path", s.path, "peer_pid", pid, "buffered", buffered, "error", err)
	}
}
