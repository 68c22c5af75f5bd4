// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
)

// maxSocketPath is the usable length of sockaddr_un.sun_path.
const maxSocketPath = 107

// SocketDir returns a fresh directory under the system temp root that
// is short enough to hold endpoint sockets. It is removed when the test
// ends.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("", "hr-")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(directory) })

	// Leave room for a typical "<name>.sock" file.
	if probe := filepath.Join(directory, "named-pipe-for-dll-hook-message.sock"); len(probe) > maxSocketPath {
		t.Skipf("temp directory %s too long for Unix sockets", directory)
	}
	return directory
}

var sequence atomic.Uint64

// UniqueID returns prefix followed by a process-wide sequence number,
// for example "concurrent-7".
func UniqueID(prefix string) string {
	return prefix + "-" + strconv.FormatUint(sequence.Add(1), 10)
}
