// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix && !windows

package channel

import (
	"fmt"
	"os"
)

// lockEndpoint opens the lock file without locking it; these platforms
// have no advisory file locks.
func lockEndpoint(path string) (*os.File, error) {
	file, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening endpoint lock %s.lock: %w", path, err)
	}
	return file, nil
}
