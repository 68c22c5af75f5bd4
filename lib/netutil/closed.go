// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds small connection helpers shared by the channel
// server and client.
package netutil

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal end of a relay
// connection: EOF, a closed connection, broken pipe, or connection
// reset. Clients close immediately after writing their frame, so a
// reader task that sees one of these before a terminator has simply
// lost the race with a peer that gave up. These are logged at debug
// level, not as failures.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

// IsTimeout reports whether err is a deadline expiry on a connection.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsTransientDialError reports whether a dial failure means the
// endpoint exists but cannot take a connection right now: the listen
// backlog is full (EAGAIN) or the listener is between instances
// (ECONNREFUSED). Callers may retry these. Anything else, notably a
// missing socket file, means nobody is listening.
func IsTransientDialError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ECONNREFUSED)
}
