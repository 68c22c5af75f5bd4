// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/hookrelay/lib/event"
)

// Options configures a Context.
type Options struct {
	// Hooker installs the hooks. Required.
	Hooker Hooker

	// Sender relays formatted lines. Nil drops them.
	Sender Sender

	// Logger receives lifecycle diagnostics. Nil discards them.
	Logger *slog.Logger

	// PID is reported in the attach announcement. Zero selects
	// os.Getpid().
	PID int
}

// hookSlot holds one hook registration behind its own lock.
type hookSlot struct {
	mu     sync.Mutex
	handle Handle
	held   bool
}

// Context is the per-process capture lifecycle. All methods are safe
// for concurrent use.
type Context struct {
	hooker Hooker
	sender Sender
	logger *slog.Logger
	pid    int

	state atomic.Int32

	moduleMu sync.Mutex
	module   Module
	attached bool

	// label is the process file name prepended to every event line.
	// Written once by the first Attach and read by every callback.
	label     atomic.Pointer[string]
	labelOnce sync.Once

	pointer hookSlot
	window  hookSlot
}

// NewContext returns a Detached context.
func NewContext(options Options) *Context {
	if options.Hooker == nil {
		panic("capture.NewContext: Hooker is required")
	}
	c := &Context{
		hooker: options.Hooker,
		sender: options.Sender,
		logger: options.Logger,
		pid:    options.PID,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.pid == 0 {
		c.pid = os.Getpid()
	}
	return c
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	return State(c.state.Load())
}

// Label returns the cached process file name, or "" when unknown.
func (c *Context) Label() string {
	if label := c.label.Load(); label != nil {
		return *label
	}
	return ""
}

// Attach records the module reference and the process image path.
// The first writer wins: later calls, and calls that find the module
// lock contended, leave the recorded module untouched. modulePath may
// be empty when the image path is unknown. Attach announces itself to
// the collector and never fails.
func (c *Context) Attach(module Module, modulePath string) {
	if c.moduleMu.TryLock() {
		if !c.attached {
			c.module = module
			c.attached = true
		}
		c.moduleMu.Unlock()
	} else {
		c.logger.Debug("attach skipped module record, lock contended")
	}

	if modulePath != "" {
		c.labelOnce.Do(func() {
			label := fileName(modulePath)
			if label != "" {
				c.label.Store(&label)
			}
		})
	}

	c.state.CompareAndSwap(int32(Detached), int32(Attached))
	c.logger.Info("capture component attached",
		"module", uintptr(module),
		"pid", c.pid,
		"path", modulePath,
	)
	c.send(event.LoadedMessage(uintptr(module), c.pid, modulePath))
}

// StartCapture installs the pointer and window hooks. A slot that
// already holds a handle is left alone, so a second start never
// installs duplicates. Installation failures are reported per slot in
// a *RegistrationError; slots that installed successfully are kept.
// Returns ErrBusy when another start or stop holds a slot lock.
func (c *Context) StartCapture() error {
	switch c.State() {
	case Stopped:
		return ErrStopped
	case Detached:
		return ErrNotAttached
	}

	if !c.moduleMu.TryLock() {
		return ErrBusy
	}
	module, attached := c.module, c.attached
	c.moduleMu.Unlock()
	if !attached {
		return ErrNotAttached
	}

	if !c.pointer.mu.TryLock() {
		return ErrBusy
	}
	defer c.pointer.mu.Unlock()
	if !c.window.mu.TryLock() {
		return ErrBusy
	}
	defer c.window.mu.Unlock()

	// A stop may have completed between the state check and the locks.
	if c.State() == Stopped {
		return ErrStopped
	}

	var failure RegistrationError
	if !c.pointer.held {
		handle, err := c.hooker.InstallPointer(module, c.handlePointer)
		if err != nil {
			failure.Pointer = err
		} else {
			c.pointer.handle, c.pointer.held = handle, true
		}
	}
	if !c.window.held {
		handle, err := c.hooker.InstallWindow(module, c.handleWindow)
		if err != nil {
			failure.Window = err
		} else {
			c.window.handle, c.window.held = handle, true
		}
	}

	if c.pointer.held || c.window.held {
		c.state.CompareAndSwap(int32(Attached), int32(Hooked))
	}
	c.logger.Info("capture hooks installed",
		"pointer", c.pointer.held,
		"window", c.window.held,
	)

	if failure.Pointer != nil || failure.Window != nil {
		c.logger.Warn("capture hook installation failed", "error", &failure)
		return &failure
	}
	return nil
}

// StopCapture releases the installed hooks and moves to Stopped. It is
// a successful no-op when nothing was ever hooked. Each handle is
// released at most once: a handle whose release fails is still
// dropped, and the failure is reported in a *ReleaseError after the
// other slot has been released too. Returns ErrBusy when another start
// or stop holds a slot lock.
func (c *Context) StopCapture() error {
	if c.State() != Hooked {
		return nil
	}

	if !c.pointer.mu.TryLock() {
		return ErrBusy
	}
	defer c.pointer.mu.Unlock()
	if !c.window.mu.TryLock() {
		return ErrBusy
	}
	defer c.window.mu.Unlock()

	if !c.state.CompareAndSwap(int32(Hooked), int32(Stopped)) {
		return nil
	}

	var failure ReleaseError
	failure.Pointer = c.release(&c.pointer)
	failure.Window = c.release(&c.window)

	c.logger.Info("capture hooks released")
	if failure.Pointer != nil || failure.Window != nil {
		c.logger.Warn("capture hook release failed", "error", &failure)
		return &failure
	}
	return nil
}

// Detach is called when the host process unloads the component. Hooks
// are not released here; the OS reclaims them with the process.
func (c *Context) Detach() {
	c.logger.Debug("capture component detached", "state", c.State().String())
}

// release empties a slot the caller has locked.
func (c *Context) release(slot *hookSlot) error {
	if !slot.held {
		return nil
	}
	handle := slot.handle
	slot.handle, slot.held = 0, false
	return c.hooker.Release(handle)
}

func (c *Context) handlePointer(pointer event.Pointer) {
	c.send(event.FormatPointer(event.Prefix(c.Label()), pointer))
}

func (c *Context) handleWindow(window event.Window) {
	if line, ok := event.FormatWindow(event.Prefix(c.Label()), window); ok {
		c.send(line)
	}
}

func (c *Context) send(line string) {
	if c.sender != nil {
		c.sender.Send(line)
	}
}

// fileName returns the last element of a path in either Windows or
// POSIX form.
func fileName(path string) string {
	if index := strings.LastIndexAny(path, `/\`); index >= 0 {
		return path[index+1:]
	}
	return path
}
