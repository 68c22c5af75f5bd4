// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/clock"
	"github.com/bureau-foundation/hookrelay/lib/event"
	"github.com/bureau-foundation/hookrelay/lib/testutil"
)

var testEpoch = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func TestSyntheticPointerTimeline(t *testing.T) {
	fake := clock.Fake(testEpoch)
	hooker := NewSyntheticHooker(SyntheticOptions{Interval: time.Second, Clock: fake})

	received := make(chan event.Pointer, len(PointerTimeline))
	handle, err := hooker.InstallPointer(0, func(p event.Pointer) { received <- p })
	if err != nil {
		t.Fatalf("InstallPointer: %v", err)
	}

	for i, want := range PointerTimeline {
		fake.WaitForTimers(1)
		fake.Advance(time.Second)
		got := testutil.RequireReceive(t, received, 5*time.Second, "waiting for pointer event %d", i)
		if got != want {
			t.Errorf("event %d = %+v, want %+v", i, got, want)
		}
	}

	if err := hooker.Release(handle); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := hooker.Release(handle); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("second Release = %v, want ErrUnknownHandle", err)
	}
	testutil.RequireNoReceive(t, received, 10*time.Millisecond, "event after timeline ended")
}

func TestSyntheticRepeatRestartsTimeline(t *testing.T) {
	fake := clock.Fake(testEpoch)
	hooker := NewSyntheticHooker(SyntheticOptions{Interval: time.Second, Repeat: true, Clock: fake})

	received := make(chan event.Window, 1)
	handle, err := hooker.InstallWindow(0, func(w event.Window) { received <- w })
	if err != nil {
		t.Fatalf("InstallWindow: %v", err)
	}
	defer hooker.Release(handle)

	for i := range len(WindowTimeline) + 1 {
		fake.WaitForTimers(1)
		fake.Advance(time.Second)
		got := testutil.RequireReceive(t, received, 5*time.Second, "waiting for window event %d", i)
		if want := WindowTimeline[i%len(WindowTimeline)]; got != want {
			t.Errorf("event %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestSyntheticHookerDrivesContext(t *testing.T) {
	fake := clock.Fake(testEpoch)
	hooker := NewSyntheticHooker(SyntheticOptions{Interval: time.Second, Clock: fake})
	lines := make(chan string, 16)
	context := NewContext(Options{Hooker: hooker, Sender: senderFunc(func(text string) { lines <- text }), PID: 7})

	context.Attach(1, "/opt/target/bin/target")
	testutil.RequireReceive(t, lines, 5*time.Second, "waiting for announcement")

	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	// Both registrations wait on the clock; the window timeline opens
	// with a suppressed message, so the first tick yields one line.
	fake.WaitForTimers(2)
	fake.Advance(time.Second)
	first := testutil.RequireReceive(t, lines, 5*time.Second, "waiting for first pointer line")
	if want := "target: mouse msg (WM_MOUSEMOVE: 512): x/y = 120/80"; first != want {
		t.Errorf("first line = %q, want %q", first, want)
	}
	testutil.RequireNoReceive(t, lines, 10*time.Millisecond, "suppressed window message relayed")

	if err := context.StopCapture(); err != nil {
		t.Fatalf("StopCapture: %v", err)
	}
}

type senderFunc func(string)

func (f senderFunc) Send(text string) { f(text) }
