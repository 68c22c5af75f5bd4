// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package capture

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/event"
	"github.com/bureau-foundation/hookrelay/lib/testutil"
)

var procSendMessageW = user32.NewProc("SendMessageW")

func TestWindowHookSeesHostWindowMessages(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := createHostWindow()
	if err != nil {
		t.Fatalf("createHostWindow: %v", err)
	}
	defer procDestroyWindow.Call(window)

	module, _ := CurrentModule()
	hooker := NewWin32Hooker()
	var seen []event.Window
	handle, err := hooker.InstallWindow(module, func(message event.Window) {
		if message.Handle == window {
			seen = append(seen, message)
		}
	})
	if err != nil {
		t.Fatalf("InstallWindow: %v", err)
	}
	defer hooker.Release(handle)

	procSendMessageW.Call(window, uintptr(event.WMMoving), 8, 0)

	var moving bool
	for _, message := range seen {
		if message.Message == event.WMMoving && message.WParam == 8 {
			moving = true
		}
	}
	if !moving {
		t.Fatalf("window hook saw %+v, want a WM_MOVING for the host window", seen)
	}
}

func TestRunHookLoopReturnsStartError(t *testing.T) {
	failure := errors.New("no hooks")
	if err := RunHookLoop(context.Background(), func() error { return failure }); !errors.Is(err, failure) {
		t.Errorf("RunHookLoop = %v, want the start error", err)
	}
}

func TestRunHookLoopClosesWindowOnCancel(t *testing.T) {
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
	cancel()
	if err := testutil.RequireReceive(t, done, 5*time.Second, "loop did not return after cancel"); err != nil {
		t.Errorf("RunHookLoop = %v, want nil", err)
	}
}
