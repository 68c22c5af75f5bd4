// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBusy means another start or stop holds a lock this operation
	// needs. The caller may retry; nothing was changed.
	ErrBusy = errors.New("capture: another lifecycle operation is in progress")

	// ErrNotAttached means StartCapture ran before Attach recorded a
	// module reference.
	ErrNotAttached = errors.New("capture: module not attached")

	// ErrStopped means capture was stopped and cannot be restarted.
	ErrStopped = errors.New("capture: stopped")
)

// RegistrationError reports which hook installations failed during
// StartCapture. Slots that installed successfully stay installed.
type RegistrationError struct {
	Pointer error
	Window  error
}

func (e *RegistrationError) Error() string {
	return "capture: installing hooks: " + slotErrors(e.Pointer, e.Window)
}

func (e *RegistrationError) Unwrap() []error {
	return nonNil(e.Pointer, e.Window)
}

// ReleaseError reports which hook releases failed during StopCapture.
// A failed release never prevents the other slot from being released.
type ReleaseError struct {
	Pointer error
	Window  error
}

func (e *ReleaseError) Error() string {
	return "capture: releasing hooks: " + slotErrors(e.Pointer, e.Window)
}

func (e *ReleaseError) Unwrap() []error {
	return nonNil(e.Pointer, e.Window)
}

func slotErrors(pointer, window error) string {
	var parts []string
	if pointer != nil {
		parts = append(parts, fmt.Sprintf("pointer: %v", pointer))
	}
	if window != nil {
		parts = append(parts, fmt.Sprintf("window: %v", window))
	}
	return strings.Join(parts, "; ")
}

func nonNil(errs ...error) []error {
	var result []error
	for _, err := range errs {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
