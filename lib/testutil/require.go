// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// TB is the part of testing.TB these helpers call, so they can be
// exercised against a recording fake.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch. The test fails if ch
// is closed or stays silent for timeout. The trailing arguments
// describe what was awaited: a plain string, or a format and its
// operands.
//
//	message := testutil.RequireReceive(t, published, 5*time.Second, "message %d", i)
func RequireReceive[T any](t TB, ch <-chan T, timeout time.Duration, what ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout) //nolint:realclock test hang prevention
	defer timer.Stop()

	var zero T
	select {
	case value, open := <-ch:
		if open {
			return value
		}
		t.Fatalf("%s: channel closed before a value arrived", describe(what))
	case <-timer.C:
		t.Fatalf("%s: nothing received within %v", describe(what), timeout)
	}
	return zero
}

// RequireNoReceive fails the test if ch delivers a value before wait
// elapses. A closed channel is not a delivery.
func RequireNoReceive[T any](t TB, ch <-chan T, wait time.Duration, what ...any) {
	t.Helper()
	timer := time.NewTimer(wait) //nolint:realclock bounded negative check
	defer timer.Stop()

	select {
	case value, open := <-ch:
		if open {
			t.Fatalf("%s: unexpected value %v", describe(what), value)
		}
	case <-timer.C:
	}
}

// RequireClosed fails the test unless ch is closed (or signalled)
// within timeout.
//
//	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server listening")
func RequireClosed(t TB, ch <-chan struct{}, timeout time.Duration, what ...any) {
	t.Helper()
	timer := time.NewTimer(timeout) //nolint:realclock test hang prevention
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
		t.Fatalf("%s: channel not closed within %v", describe(what), timeout)
	}
}

func describe(what []any) string {
	switch {
	case len(what) == 0:
		return "wait"
	case len(what) == 1:
		return fmt.Sprint(what[0])
	}
	if format, ok := what[0].(string); ok {
		return fmt.Sprintf(format, what[1:]...)
	}
	return fmt.Sprint(what...)
}
