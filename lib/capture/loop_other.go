// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package capture

import "context"

// RunHookLoop runs start and then blocks until ctx is cancelled. Hook
// backends outside Windows deliver events on their own goroutines, so
// there is no message queue to pump.
func RunHookLoop(ctx context.Context, start func() error) error {
	if err := start(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
