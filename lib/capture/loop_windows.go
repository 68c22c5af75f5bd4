// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package capture

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmDestroy = 0x0002
	wmClose   = 0x0010

	wsOverlappedWindow = 0x00CF0000
	cwUseDefault       = 0x80000000
	swShow             = 5
)

var (
	procGetMessageW       = user32.NewProc("GetMessageW")
	procTranslateMessage  = user32.NewProc("TranslateMessage")
	procDispatchMessageW  = user32.NewProc("DispatchMessageW")
	procPostMessageW      = user32.NewProc("PostMessageW")
	procPostQuitMessage   = user32.NewProc("PostQuitMessage")
	procRegisterClassW    = user32.NewProc("RegisterClassW")
	procCreateWindowExW   = user32.NewProc("CreateWindowExW")
	procDestroyWindow     = user32.NewProc("DestroyWindow")
	procDefWindowProcW    = user32.NewProc("DefWindowProcW")
	procShowWindow        = user32.NewProc("ShowWindow")
	procUpdateWindow      = user32.NewProc("UpdateWindow")
	hostWindowClass       = windows.StringToUTF16Ptr("HookrelayMain")
	hostWindowTitle       = windows.StringToUTF16Ptr("Main")
	hostWindowCallback    = windows.NewCallback(hostWindowProc)
	registerHostClassOnce sync.Once
	registerHostClassErr  error
)

// threadMessage mirrors MSG.
type threadMessage struct {
	Window  uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	X, Y    int32
	Private uint32
}

// windowClass mirrors WNDCLASSW.
type windowClass struct {
	Style      uint32
	WndProc    uintptr
	ClassExtra int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
}

// RunHookLoop runs start on a dedicated OS thread that owns a visible
// top-level window, and pumps that thread's message queue until ctx is
// cancelled or the window is closed. WH_MOUSE and WH_CALLWNDPROC hooks
// are scoped to the installing thread and only see messages for its
// windows, so start must install them from inside this call.
func RunHookLoop(ctx context.Context, start func() error) error {
	result := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		window, err := createHostWindow()
		if err != nil {
			result <- err
			return
		}
		if err := start(); err != nil {
			procDestroyWindow.Call(window)
			result <- err
			return
		}

		// WM_CLOSE goes through DefWindowProcW, which destroys the
		// window; WM_DESTROY then posts the quit message.
		stop := context.AfterFunc(ctx, func() {
			procPostMessageW.Call(window, wmClose, 0, 0)
		})
		defer stop()

		result <- pumpMessages()
	}()
	return <-result
}

func pumpMessages() error {
	var message threadMessage
	for {
		status, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&message)), 0, 0, 0)
		switch int32(status) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&message)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&message)))
	}
}

// createHostWindow creates and shows the window owned by the calling
// thread.
func createHostWindow() (uintptr, error) {
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return 0, fmt.Errorf("GetModuleHandleExW: %w", err)
	}

	registerHostClassOnce.Do(func() {
		class := windowClass{
			WndProc:   hostWindowCallback,
			Instance:  instance,
			ClassName: hostWindowClass,
		}
		atom, _, err := procRegisterClassW.Call(uintptr(unsafe.Pointer(&class)))
		if atom == 0 && !errors.Is(err, windows.ERROR_CLASS_ALREADY_EXISTS) {
			registerHostClassErr = fmt.Errorf("RegisterClassW: %w", err)
		}
	})
	if registerHostClassErr != nil {
		return 0, registerHostClassErr
	}

	window, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(hostWindowClass)),
		uintptr(unsafe.Pointer(hostWindowTitle)),
		wsOverlappedWindow,
		cwUseDefault, cwUseDefault, cwUseDefault, cwUseDefault,
		0, 0,
		uintptr(instance),
		0,
	)
	if window == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", err)
	}
	procShowWindow.Call(window, swShow)
	procUpdateWindow.Call(window)
	return window, nil
}

func hostWindowProc(window, message, wParam, lParam uintptr) uintptr {
	if message == wmDestroy {
		procPostQuitMessage.Call(0)
		return 0
	}
	result, _, _ := procDefWindowProcW.Call(window, message, wParam, lParam)
	return result
}
