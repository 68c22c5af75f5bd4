// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/bureau-foundation/hookrelay/lib/clock"
	"github.com/bureau-foundation/hookrelay/lib/event"
)

// DefaultSyntheticInterval is the spacing between synthetic events.
const DefaultSyntheticInterval = 250 * time.Millisecond

// SyntheticOptions configures a SyntheticHooker.
type SyntheticOptions struct {
	// Interval is the delay before each event. Defaults to
	// DefaultSyntheticInterval.
	Interval time.Duration

	// Repeat replays the timeline until the hook is released instead
	// of stopping after one pass.
	Repeat bool

	// Clock paces the timeline. Defaults to clock.Real().
	Clock clock.Clock
}

// SyntheticHooker is a Hooker that replays a fixed event timeline on
// its own goroutine per registration. It stands in for the OS hooks on
// platforms that have none and drives end-to-end runs of the relay.
type SyntheticHooker struct {
	interval time.Duration
	repeat   bool
	clock    clock.Clock

	mu      sync.Mutex
	next    Handle
	running map[Handle]*syntheticRun
}

type syntheticRun struct {
	done    chan struct{}
	stopped chan struct{}
}

// NewSyntheticHooker returns a SyntheticHooker.
func NewSyntheticHooker(options SyntheticOptions) *SyntheticHooker {
	hooker := &SyntheticHooker{
		interval: options.Interval,
		repeat:   options.Repeat,
		clock:    options.Clock,
		running:  make(map[Handle]*syntheticRun),
	}
	if hooker.interval <= 0 {
		hooker.interval = DefaultSyntheticInterval
	}
	if hooker.clock == nil {
		hooker.clock = clock.Real()
	}
	return hooker
}

// PointerTimeline is the sequence replayed to pointer hooks.
var PointerTimeline = []event.Pointer{
	{Message: event.WMMouseMove, X: 120, Y: 80},
	{Message: event.WMLButtonDown, X: 120, Y: 80},
	{Message: event.WMLButtonUp, X: 120, Y: 80},
	{Message: event.WMMouseWheel, X: 120, Y: 96, MouseData: 0xFF880000},
	{Message: event.WMXButtonDown, X: 64, Y: 64, MouseData: 1 << 16},
	{Message: event.WMNCHitTest, X: 4, Y: 2},
}

// WindowTimeline is the sequence replayed to window hooks. It includes
// messages the decoder suppresses.
var WindowTimeline = []event.Window{
	{Message: 0x0005, Handle: 0x10204, WParam: 0, LParam: 0x01e00280},
	{Message: event.WMMoving, Handle: 0x10204, WParam: 8, LParam: 0x0014fa30},
	{Message: event.WMClose, Handle: 0x10204},
}

func (h *SyntheticHooker) InstallPointer(module Module, handle func(event.Pointer)) (Handle, error) {
	return h.start(func(index int) bool {
		if index >= len(PointerTimeline) {
			return false
		}
		handle(PointerTimeline[index])
		return true
	}), nil
}

func (h *SyntheticHooker) InstallWindow(module Module, handle func(event.Window)) (Handle, error) {
	return h.start(func(index int) bool {
		if index >= len(WindowTimeline) {
			return false
		}
		handle(WindowTimeline[index])
		return true
	}), nil
}

// Release stops the registration's goroutine and waits for it to exit.
func (h *SyntheticHooker) Release(handle Handle) error {
	h.mu.Lock()
	run, ok := h.running[handle]
	delete(h.running, handle)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	close(run.done)
	<-run.stopped
	return nil
}

// start launches a replay goroutine. emit delivers the event at index
// and reports false once the timeline is exhausted.
func (h *SyntheticHooker) start(emit func(index int) bool) Handle {
	run := &syntheticRun{
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	h.mu.Lock()
	h.next++
	id := h.next
	h.running[id] = run
	h.mu.Unlock()

	go func() {
		defer close(run.stopped)
		index := 0
		for {
			select {
			case <-run.done:
				return
			case <-h.clock.After(h.interval):
			}
			if emit(index) {
				index++
				continue
			}
			if !h.repeat {
				<-run.done
				return
			}
			index = 0
			emit(index)
			index++
		}
	}()
	return id
}
