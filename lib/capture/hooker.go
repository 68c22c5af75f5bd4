// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import "github.com/bureau-foundation/hookrelay/lib/event"

// Module is the OS reference to the loaded module the hooks belong to.
type Module uintptr

// Handle is an opaque hook registration returned by a Hooker.
type Handle uintptr

// Hooker installs and releases OS event hooks. Callbacks run
// synchronously on whatever thread delivers the event and must return
// quickly.
type Hooker interface {
	// InstallPointer registers a mouse hook that calls handle for
	// every pointer event.
	InstallPointer(module Module, handle func(event.Pointer)) (Handle, error)

	// InstallWindow registers a window-procedure hook that calls
	// handle for every delivered window message.
	InstallWindow(module Module, handle func(event.Window)) (Handle, error)

	// Release removes a registration. Each handle is released at most
	// once.
	Release(handle Handle) error
}

// Sender relays a formatted line to the collector. Delivery is best
// effort and must never block for long. A channel.Client satisfies it.
type Sender interface {
	Send(text string)
}
