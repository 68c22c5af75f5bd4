// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package capture

import "golang.org/x/sys/windows"

// maxModulePath is the longest extended-length path Windows returns.
const maxModulePath = 32768

// DefaultHooker returns the Win32 hook backend.
func DefaultHooker() Hooker {
	return NewWin32Hooker()
}

// CurrentModule returns the running executable's module handle and
// image path. The path is empty when it cannot be read.
func CurrentModule() (Module, string) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return 0, ""
	}
	buffer := make([]uint16, maxModulePath)
	n, err := windows.GetModuleFileName(module, &buffer[0], uint32(len(buffer)))
	if err != nil || n == 0 {
		return Module(module), ""
	}
	return Module(module), windows.UTF16ToString(buffer[:n])
}
