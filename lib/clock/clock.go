// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the subset of the time package the relay waits on.
type Clock interface {
	Now() time.Time

	// After delivers the clock's time on the returned channel once d
	// has elapsed. A non-positive d delivers immediately.
	After(d time.Duration) <-chan time.Time

	Sleep(d time.Duration)
}

// Real returns the wall clock.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) After(d time.Duration) <-chan time.Time {
	timer := time.NewTimer(d)
	return timer.C
}

func (wallClock) Sleep(d time.Duration) {
	if d > 0 {
		<-time.NewTimer(d).C
	}
}
