// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/testutil"
)

func TestRunHookLoopReturnsStartError(t *testing.T) {
	failure := errors.New("no hooks")
	if err := RunHookLoop(context.Background(), func() error { return failure }); !errors.Is(err, failure) {
		t.Errorf("RunHookLoop = %v, want the start error", err)
	}
}

func TestRunHookLoopBlocksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- RunHookLoop(ctx, func() error {
			close(started)
			return nil
		})
	}()

	testutil.RequireClosed(t, started, 5*time.Second, "start was not called")
	testutil.RequireNoReceive(t, done, 10*time.Millisecond, "loop returned before cancellation")
	cancel()
	if err := testutil.RequireReceive(t, done, 5*time.Second, "loop did not return after cancel"); err != nil {
		t.Errorf("RunHookLoop = %v, want nil", err)
	}
}
