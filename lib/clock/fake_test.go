// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfterFiresOnAdvance(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(3 * time.Second)

	select {
	case <-channel:
		t.Fatal("After fired before Advance")
	default:
	}

	clock.Advance(2 * time.Second)
	select {
	case <-channel:
		t.Fatal("After fired before deadline")
	default:
	}

	clock.Advance(time.Second)
	select {
	case <-channel:
	default:
		t.Fatal("After did not fire at deadline")
	}
	if clock.PendingCount() != 0 {
		t.Fatalf("PendingCount() = %d after firing, want 0", clock.PendingCount())
	}
}

func TestFakeClockAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case <-clock.After(d):
		default:
			t.Fatalf("After(%v) should fire immediately", d)
		}
	}
	if clock.PendingCount() != 0 {
		t.Fatalf("non-positive After registered %d waiters", clock.PendingCount())
	}
}

func TestFakeClockSleepWaitsForAdvance(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})
	go func() {
		clock.Sleep(10 * time.Millisecond)
		close(done)
	}()

	clock.WaitForTimers(1)
	select {
	case <-done:
		t.Fatal("Sleep returned before Advance")
	default:
	}

	clock.Advance(10 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(5 * time.Second): //nolint:realclock test hang prevention
		t.Fatal("Sleep did not return after Advance")
	}
}

func TestFakeClockDeliversInDeadlineOrder(t *testing.T) {
	clock := Fake(epoch)
	late := clock.After(30 * time.Millisecond)
	early := clock.After(10 * time.Millisecond)
	alsoEarly := clock.After(10 * time.Millisecond)
	if clock.PendingCount() != 3 {
		t.Fatalf("PendingCount() = %d, want 3", clock.PendingCount())
	}

	clock.Advance(20 * time.Millisecond)
	for name, channel := range map[string]<-chan time.Time{"early": early, "alsoEarly": alsoEarly} {
		select {
		case got := <-channel:
			if want := epoch.Add(20 * time.Millisecond); !got.Equal(want) {
				t.Errorf("%s delivered %v, want %v", name, got, want)
			}
		default:
			t.Errorf("%s not delivered after Advance", name)
		}
	}
	select {
	case <-late:
		t.Fatal("late wait delivered early")
	default:
	}
	if clock.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", clock.PendingCount())
	}
}

func TestRealClockAfterNonPositive(t *testing.T) {
	select {
	case <-Real().After(0):
	case <-time.After(5 * time.Second): //nolint:realclock test hang prevention
		t.Fatal("Real().After(0) did not fire")
	}
}
