// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"container/heap"
	"sync"
	"time"
)

// FakeClock is a manually driven Clock. Pending waits are kept in a
// heap ordered by deadline and are delivered only by Advance. It is
// safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending deadlineHeap
	// sequence breaks ties between equal deadlines so waits registered
	// first are delivered first.
	sequence uint64
	changed  *sync.Cond
}

// Fake returns a FakeClock frozen at start.
func Fake(start time.Time) *FakeClock {
	fake := &FakeClock{now: start}
	fake.changed = sync.NewCond(&fake.mu)
	return fake
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// After registers a wait that Advance delivers once the fake time
// reaches now+d. A non-positive d is delivered immediately and is not
// counted as pending.
func (f *FakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	delivery := make(chan time.Time, 1)
	if d <= 0 {
		delivery <- f.now
		return delivery
	}
	f.sequence++
	heap.Push(&f.pending, &pendingWait{
		due:      f.now.Add(d),
		order:    f.sequence,
		delivery: delivery,
	})
	f.changed.Broadcast()
	return delivery
}

func (f *FakeClock) Sleep(d time.Duration) {
	if d > 0 {
		<-f.After(d)
	}
}

// Advance moves the fake time forward and delivers, earliest deadline
// first, every wait that has come due.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	reached := f.now
	var due []*pendingWait
	for f.pending.Len() > 0 && !f.pending[0].due.After(reached) {
		due = append(due, heap.Pop(&f.pending).(*pendingWait))
	}
	f.mu.Unlock()

	for _, wait := range due {
		wait.delivery <- reached
	}
}

// WaitForTimers blocks until n or more waits are pending. Tests call it
// before Advance so a goroutine's After or Sleep is known to be
// registered.
func (f *FakeClock) WaitForTimers(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.pending.Len() < n {
		f.changed.Wait()
	}
}

// PendingCount reports how many waits have not been delivered.
func (f *FakeClock) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.Len()
}

type pendingWait struct {
	due      time.Time
	order    uint64
	delivery chan time.Time
}

// deadlineHeap implements heap.Interface over pending waits.
type deadlineHeap []*pendingWait

func (h deadlineHeap) Len() int { return len(h) }

func (h deadlineHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].order < h[j].order
	}
	return h[i].due.Before(h[j].due)
}

func (h deadlineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *deadlineHeap) Push(x any) { *h = append(*h, x.(*pendingWait)) }

func (h *deadlineHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return last
}
