// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package capture

import "os"

// DefaultHooker returns the synthetic backend. There are no OS pointer
// hooks to install outside Windows.
func DefaultHooker() Hooker {
	return NewSyntheticHooker(SyntheticOptions{})
}

// CurrentModule returns a module reference for the running process and
// its executable path. The reference is the process id, since there is
// no module handle to report.
func CurrentModule() (Module, string) {
	path, err := os.Executable()
	if err != nil {
		return Module(os.Getpid()), ""
	}
	return Module(os.Getpid()), path
}
