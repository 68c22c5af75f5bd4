// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package capture

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bureau-foundation/hookrelay/lib/event"
)

const (
	whMouse       = 7
	whCallWndProc = 4
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
)

// mouseHookStructEx mirrors MOUSEHOOKSTRUCTEX.
type mouseHookStructEx struct {
	X, Y        int32
	Window      uintptr
	HitTestCode uint32
	ExtraInfo   uintptr
	MouseData   uint32
}

// cwpStruct mirrors CWPSTRUCT.
type cwpStruct struct {
	LParam  uintptr
	WParam  uintptr
	Message uint32
	Window  uintptr
}

// Callback trampolines are process-global: the runtime caps how many
// can be created, so each hook kind gets exactly one and dispatches to
// the handler registered for it.
var (
	win32Mu       sync.Mutex
	win32Pointer  func(event.Pointer)
	win32Window   func(event.Window)
	pointerHook   Handle
	windowHook    Handle
	mouseCallback = windows.NewCallback(mouseProc)
	wndCallback   = windows.NewCallback(callWndProc)
)

// Win32Hooker installs WH_MOUSE and WH_CALLWNDPROC hooks on the calling
// thread. Both only see messages for windows that thread owns, so
// install from the start func of RunHookLoop, which provides the window
// and pumps its messages. At most one pointer and one window hook may be
// live per process.
type Win32Hooker struct{}

// NewWin32Hooker returns the Win32 hook backend.
func NewWin32Hooker() *Win32Hooker {
	return &Win32Hooker{}
}

func (*Win32Hooker) InstallPointer(module Module, handle func(event.Pointer)) (Handle, error) {
	win32Mu.Lock()
	defer win32Mu.Unlock()
	if win32Pointer != nil {
		return 0, errors.New("pointer hook already installed")
	}
	hook, err := setWindowsHook(whMouse, mouseCallback, module)
	if err != nil {
		return 0, fmt.Errorf("SetWindowsHookExW(WH_MOUSE): %w", err)
	}
	win32Pointer, pointerHook = handle, hook
	return hook, nil
}

func (*Win32Hooker) InstallWindow(module Module, handle func(event.Window)) (Handle, error) {
	win32Mu.Lock()
	defer win32Mu.Unlock()
	if win32Window != nil {
		return 0, errors.New("window hook already installed")
	}
	hook, err := setWindowsHook(whCallWndProc, wndCallback, module)
	if err != nil {
		return 0, fmt.Errorf("SetWindowsHookExW(WH_CALLWNDPROC): %w", err)
	}
	win32Window, windowHook = handle, hook
	return hook, nil
}

func (*Win32Hooker) Release(handle Handle) error {
	win32Mu.Lock()
	switch handle {
	case pointerHook:
		win32Pointer, pointerHook = nil, 0
	case windowHook:
		win32Window, windowHook = nil, 0
	}
	win32Mu.Unlock()

	result, _, err := procUnhookWindowsHookEx.Call(uintptr(handle))
	if result == 0 {
		return fmt.Errorf("UnhookWindowsHookEx: %w", err)
	}
	return nil
}

func setWindowsHook(kind int, callback uintptr, module Module) (Handle, error) {
	hook, _, err := procSetWindowsHookExW.Call(
		uintptr(kind),
		callback,
		uintptr(module),
		uintptr(windows.GetCurrentThreadId()),
	)
	if hook == 0 {
		return 0, err
	}
	return Handle(hook), nil
}

func mouseProc(code int32, wParam, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		win32Mu.Lock()
		handler := win32Pointer
		win32Mu.Unlock()
		if handler != nil {
			info := (*mouseHookStructEx)(unsafe.Pointer(lParam))
			handler(event.Pointer{
				Message:   uint32(wParam),
				X:         info.X,
				Y:         info.Y,
				MouseData: info.MouseData,
			})
		}
	}
	result, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return result
}

func callWndProc(code int32, wParam, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		win32Mu.Lock()
		handler := win32Window
		win32Mu.Unlock()
		if handler != nil {
			message := (*cwpStruct)(unsafe.Pointer(lParam))
			handler(event.Window{
				Message: message.Message,
				Handle:  message.Window,
				WParam:  message.WParam,
				LParam:  int64(int(message.LParam)),
			})
		}
	}
	result, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return result
}
