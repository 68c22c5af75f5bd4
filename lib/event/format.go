// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix returns the line prefix for a process file name label, or ""
// when the label is unknown.
func Prefix(label string) string {
	if label == "" {
		return ""
	}
	return label + ": "
}

// Format renders any captured event. The boolean is false for events
// that are intentionally not surfaced.
func Format(prefix string, captured Event) (string, bool) {
	switch typed := captured.(type) {
	case Pointer:
		return FormatPointer(prefix, typed), true
	case Window:
		return FormatWindow(prefix, typed)
	default:
		return "", false
	}
}

// FormatPointer renders a pointer event:
//
//	explorer.exe: mouse msg (WM_MOUSEWHEEL: 522): x/y = 10/20, wheel: -120
//
// Coordinates are always present. Wheel events add the wheel delta and
// extended-button events add the button index. Unknown codes render as
// "(<code>)" with coordinates only.
func FormatPointer(prefix string, p Pointer) string {
	code := strconv.FormatUint(uint64(p.Message), 10)
	var line strings.Builder
	line.WriteString(prefix)
	name, known := MessageName(p.Message)
	if known {
		fmt.Fprintf(&line, "mouse msg (%s: %s): x/y = %d/%d", name, code, p.X, p.Y)
	} else {
		fmt.Fprintf(&line, "mouse msg (%s): x/y = %d/%d", code, p.X, p.Y)
		return line.String()
	}

	switch {
	case isWheel(p.Message):
		fmt.Fprintf(&line, ", wheel: %d", p.WheelDelta())
	case isExtendedButton(p.Message):
		fmt.Fprintf(&line, ", button target: %d", p.ButtonTarget())
	}
	return line.String()
}

// FormatWindow renders a window-procedure event. Only WM_CLOSE and
// WM_MOVING are surfaced; every other message returns false.
//
//	notepad.exe: WM_MOVING of hWnd(66052): wParam/lParam = 8/1234567
func FormatWindow(prefix string, w Window) (string, bool) {
	var name string
	switch w.Message {
	case WMClose:
		name = "WM_CLOSE"
	case WMMoving:
		name = "WM_MOVING"
	default:
		return "", false
	}
	return fmt.Sprintf("%s%s of hWnd(%d): wParam/lParam = %d/%d",
		prefix, name, w.Handle, w.WParam, w.LParam), true
}

// LoadedMessage is the line a capture component sends when it attaches
// to a process. modulePath may be empty when the process image path is
// unknown.
func LoadedMessage(instance uintptr, pid int, modulePath string) string {
	if modulePath == "" {
		return fmt.Sprintf("We've loaded the library. as instance %d (pid: %d)", instance, pid)
	}
	return fmt.Sprintf("We've loaded the library. as instance %d (pid: %d) from \"%s\"", instance, pid, modulePath)
}
