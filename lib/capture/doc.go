// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture manages the capture component that runs inside an
// instrumented process: it installs pointer and window-procedure hooks,
// formats every intercepted event with [event.Format], and relays the
// line to the collector through a fire-and-forget [Sender].
//
// A [Context] walks Detached → Attached → Hooked → Stopped. Stopped is
// final. The module reference and each of the two hook handle slots
// has its own mutex, taken with TryLock so that a contended lock
// reports [ErrBusy] instead of stalling a hook callback thread. When
// both slots are needed the pointer slot is always locked first.
//
// Hooks are installed through a [Hooker]. The Win32 backend is built
// only on Windows; [SyntheticHooker] replays a fixed event timeline on
// every platform, and [MemoryHooker] lets tests emit events and inject
// failures directly.
//
// [Component] exposes the small integer-returning surface a host binds
// to: a self-test value, start and stop, and the endpoint name query.
package capture
