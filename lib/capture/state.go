// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import "fmt"

// State is the lifecycle state of a Context.
type State int32

const (
	// Detached is the initial state: no module has been recorded.
	Detached State = iota

	// Attached means the module reference is recorded and hooks may
	// be installed.
	Attached

	// Hooked means at least one hook handle is held.
	Hooked

	// Stopped is final. Hooks cannot be installed again.
	Stopped
)

func (s State) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	case Hooked:
		return "hooked"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
