// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package channel

import "net"

// peerPID is not available without SO_PEERCRED.
func peerPID(net.Conn) int32 {
	return 0
}
