// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package event turns captured pointer and window-procedure events into
// the human-readable lines relayed to the collector.
//
// Hook backends decode the OS callback payload into a typed [Pointer]
// or [Window] value at the capture boundary; nothing past that point
// sees a raw pointer. Formatting never fails: an unknown message code is
// printed numerically with no event-specific fields.
package event

// Event is a captured event. The concrete type is [Pointer] or [Window].
type Event interface {
	isEvent()
}

// Pointer is a mouse hook event.
type Pointer struct {
	// Message is the window message code the hook reported.
	Message uint32

	// X and Y are screen coordinates.
	X, Y int32

	// MouseData carries the wheel delta or extended button index in
	// its high word.
	MouseData uint32
}

// Window is a window-procedure hook event.
type Window struct {
	// Message is the window message code being delivered.
	Message uint32

	// Handle is the target window handle.
	Handle uintptr

	// WParam and LParam are the message parameters.
	WParam uintptr
	LParam int64
}

func (Pointer) isEvent() {}
func (Window) isEvent()  {}

// WheelDelta returns the signed wheel rotation stored in the high word
// of MouseData.
func (p Pointer) WheelDelta() int16 {
	return int16(p.MouseData >> 16)
}

// ButtonTarget returns the extended button index stored in the high
// word of MouseData.
func (p Pointer) ButtonTarget() uint32 {
	return p.MouseData >> 16 & 0xffff
}
