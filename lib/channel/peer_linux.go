// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package channel

import (
	"net"

	"golang.org/x/sys/unix"
)

// peerPID returns the process id of the peer on a Unix socket
// connection, read from SO_PEERCRED. Returns 0 if the credentials are
// unavailable. The pid is informational only; it is never used to
// authorize a peer.
func peerPID(conn net.Conn) int32 {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return 0
	}
	raw, err := unixConn.SyscallConn()
	if err != nil {
		return 0
	}
	var pid int32
	controlErr := raw.Control(func(fd uintptr) {
		credentials, err := unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
		if err == nil {
			pid = credentials.Pid
		}
	})
	if controlErr != nil {
		return 0
	}
	return pid
}
