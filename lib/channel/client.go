// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/clock"
	"github.com/bureau-foundation/hookrelay/lib/frame"
	"github.com/bureau-foundation/hookrelay/lib/netutil"
)

// Client retry defaults: up to 10 connection attempts, 10ms apart.
const (
	DefaultAttempts     = 10
	DefaultRetryWait    = 10 * time.Millisecond
	DefaultWriteTimeout = time.Second
)

// dialTimeout bounds a single connection attempt. Unix socket dials
// either succeed or fail immediately; the timeout only guards against
// a wedged peer on platforms where connect can block.
const dialTimeout = 100 * time.Millisecond

// ErrEndpointBusy is returned by Deliver when every attempt found the
// endpoint unable to take a connection.
var ErrEndpointBusy = errors.New("channel endpoint busy")

// ClientOptions configures a Client. Zero values select the defaults.
type ClientOptions struct {
	// Attempts is the maximum number of connection attempts against a
	// busy endpoint.
	Attempts int

	// Wait is the pause between attempts.
	Wait time.Duration

	// WriteTimeout bounds the single frame write.
	WriteTimeout time.Duration

	// Clock drives the pause between attempts. Defaults to clock.Real().
	Clock clock.Clock
}

// Client sends framed messages to a collector endpoint, one connection
// per message. A Client holds no connection state and is safe for
// concurrent use from any number of goroutines or OS callback threads.
type Client struct {
	path         string
	attempts     int
	wait         time.Duration
	writeTimeout time.Duration
	clock        clock.Clock
	dial         func(path string) (net.Conn, error)
}

// NewClient returns a Client for the endpoint socket at path.
func NewClient(path string, options ClientOptions) *Client {
	client := &Client{
		path:         path,
		attempts:     options.Attempts,
		wait:         options.Wait,
		writeTimeout: options.WriteTimeout,
		clock:        options.Clock,
		dial: func(path string) (net.Conn, error) {
			return net.DialTimeout("unix", path, dialTimeout)
		},
	}
	if client.attempts <= 0 {
		client.attempts = DefaultAttempts
	}
	if client.wait <= 0 {
		client.wait = DefaultRetryWait
	}
	if client.writeTimeout <= 0 {
		client.writeTimeout = DefaultWriteTimeout
	}
	if client.clock == nil {
		client.clock = clock.Real()
	}
	return client
}

// Path returns the endpoint socket path.
func (c *Client) Path() string {
	return c.path
}

// Send delivers text on a best-effort basis and discards any failure.
// It is the call hook callbacks use: a missed line must never surface
// as an error inside the target process.
func (c *Client) Send(text string) {
	_ = c.Deliver(text)
}

// Deliver opens a fresh connection, writes the framed text in one call
// and closes the connection. It does not wait for any reply. Text
// containing a terminator byte is rejected with frame.ErrEmbeddedTerminator
// before any connection is made.
func (c *Client) Deliver(text string) error {
	encoded, err := frame.Encode(text)
	if err != nil {
		return err
	}

	conn, err := c.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)) //nolint:realclock socket deadline
	if _, err := conn.Write(encoded); err != nil {
		return fmt.Errorf("writing frame to %s: %w", c.path, err)
	}
	return nil
}

// connect dials the endpoint, retrying only while the endpoint reports
// itself busy. An absent endpoint fails on the first attempt.
func (c *Client) connect() (net.Conn, error) {
	for attempt := 1; ; attempt++ {
		conn, err := c.dial(c.path)
		if err == nil {
			return conn, nil
		}
		if !netutil.IsTransientDialError(err) {
			return nil, fmt.Errorf("connecting to %s: %w", c.path, err)
		}
		if attempt >= c.attempts {
			return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrEndpointBusy, c.path, attempt, err)
		}
		c.clock.Sleep(c.wait)
	}
}
