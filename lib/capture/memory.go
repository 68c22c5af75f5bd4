// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bureau-foundation/hookrelay/lib/event"
)

// ErrUnknownHandle is returned by MemoryHooker.Release for a handle it
// never issued or already released.
var ErrUnknownHandle = errors.New("capture: unknown hook handle")

// MemoryHooker is an in-process Hooker for tests. Events are delivered
// by calling EmitPointer and EmitWindow. Setting the Fail fields makes
// the matching operation return that error.
type MemoryHooker struct {
	mu sync.Mutex

	// FailPointer, FailWindow and FailRelease are returned by the
	// matching operation when non-nil.
	FailPointer error
	FailWindow  error
	FailRelease error

	next     Handle
	pointers map[Handle]func(event.Pointer)
	windows  map[Handle]func(event.Window)
	released []Handle
	installs int
}

// NewMemoryHooker returns an empty MemoryHooker.
func NewMemoryHooker() *MemoryHooker {
	return &MemoryHooker{
		pointers: make(map[Handle]func(event.Pointer)),
		windows:  make(map[Handle]func(event.Window)),
	}
}

func (h *MemoryHooker) InstallPointer(module Module, handle func(event.Pointer)) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailPointer != nil {
		return 0, h.FailPointer
	}
	id := h.issue()
	h.pointers[id] = handle
	return id, nil
}

func (h *MemoryHooker) InstallWindow(module Module, handle func(event.Window)) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailWindow != nil {
		return 0, h.FailWindow
	}
	id := h.issue()
	h.windows[id] = handle
	return id, nil
}

func (h *MemoryHooker) Release(handle Handle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, isPointer := h.pointers[handle]
	_, isWindow := h.windows[handle]
	if !isPointer && !isWindow {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	// The registration is gone even when release reports failure, the
	// same as an OS unhook that errors after the handle is invalidated.
	delete(h.pointers, handle)
	delete(h.windows, handle)
	h.released = append(h.released, handle)
	return h.FailRelease
}

// EmitPointer delivers a pointer event to every installed pointer hook
// and returns how many received it.
func (h *MemoryHooker) EmitPointer(pointer event.Pointer) int {
	h.mu.Lock()
	handlers := make([]func(event.Pointer), 0, len(h.pointers))
	for _, handler := range h.pointers {
		handlers = append(handlers, handler)
	}
	h.mu.Unlock()
	for _, handler := range handlers {
		handler(pointer)
	}
	return len(handlers)
}

// EmitWindow delivers a window event to every installed window hook
// and returns how many received it.
func (h *MemoryHooker) EmitWindow(window event.Window) int {
	h.mu.Lock()
	handlers := make([]func(event.Window), 0, len(h.windows))
	for _, handler := range h.windows {
		handlers = append(handlers, handler)
	}
	h.mu.Unlock()
	for _, handler := range handlers {
		handler(window)
	}
	return len(handlers)
}

// Installed returns the number of live registrations.
func (h *MemoryHooker) Installed() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pointers) + len(h.windows)
}

// Installs returns the total number of successful installations.
func (h *MemoryHooker) Installs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.installs
}

// Released returns the handles passed to Release, in call order.
func (h *MemoryHooker) Released() []Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Handle(nil), h.released...)
}

// issue allocates the next handle. Caller holds h.mu.
func (h *MemoryHooker) issue() Handle {
	h.next++
	h.installs++
	return h.next
}
