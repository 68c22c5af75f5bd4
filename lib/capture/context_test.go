// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"sync"
	"testing"

	"github.com/bureau-foundation/hookrelay/lib/event"
)

// recordingSender collects every line relayed by a Context.
type recordingSender struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSender) Send(text string) {
	s.mu.Lock()
	s.lines = append(s.lines, text)
	s.mu.Unlock()
}

func (s *recordingSender) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// moduleRecorder reports which module each installation received.
type moduleRecorder struct {
	*MemoryHooker
	mu      sync.Mutex
	modules []Module
}

func (r *moduleRecorder) InstallPointer(module Module, handle func(event.Pointer)) (Handle, error) {
	r.mu.Lock()
	r.modules = append(r.modules, module)
	r.mu.Unlock()
	return r.MemoryHooker.InstallPointer(module, handle)
}

func newTestContext(t *testing.T) (*Context, *MemoryHooker, *recordingSender) {
	t.Helper()
	hooker := NewMemoryHooker()
	sender := &recordingSender{}
	return NewContext(Options{Hooker: hooker, Sender: sender, PID: 4242}), hooker, sender
}

func attachedContext(t *testing.T) (*Context, *MemoryHooker, *recordingSender) {
	t.Helper()
	context, hooker, sender := newTestContext(t)
	context.Attach(0x7ff0000, `C:\Program Files\App\app.exe`)
	return context, hooker, sender
}

func TestAttachAnnouncesAndCachesLabel(t *testing.T) {
	context, _, sender := newTestContext(t)
	if context.State() != Detached {
		t.Fatalf("initial state = %v, want detached", context.State())
	}

	context.Attach(4096, `C:\Program Files\App\app.exe`)

	if context.State() != Attached {
		t.Errorf("state after Attach = %v, want attached", context.State())
	}
	if context.Label() != "app.exe" {
		t.Errorf("Label() = %q, want app.exe", context.Label())
	}
	lines := sender.Lines()
	want := `We've loaded the library. as instance 4096 (pid: 4242) from "C:\Program Files\App\app.exe"`
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("announcement = %q, want [%q]", lines, want)
	}
}

func TestAttachWithoutPath(t *testing.T) {
	context, _, sender := newTestContext(t)
	context.Attach(1, "")

	if context.Label() != "" {
		t.Errorf("Label() = %q, want empty", context.Label())
	}
	if lines := sender.Lines(); len(lines) != 1 || lines[0] != "We've loaded the library. as instance 1 (pid: 4242)" {
		t.Errorf("announcement = %q", lines)
	}
}

func TestAttachFirstWriterWins(t *testing.T) {
	recorder := &moduleRecorder{MemoryHooker: NewMemoryHooker()}
	context := NewContext(Options{Hooker: recorder})

	context.Attach(1, "/usr/bin/first")
	context.Attach(2, "/usr/bin/second")

	if context.Label() != "first" {
		t.Errorf("Label() = %q, want first", context.Label())
	}
	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	if len(recorder.modules) != 1 || recorder.modules[0] != 1 {
		t.Errorf("hooks installed for modules %v, want [1]", recorder.modules)
	}
}

func TestAttachContendedSkipsModule(t *testing.T) {
	context, _, _ := newTestContext(t)

	context.moduleMu.Lock()
	context.Attach(1, "")
	context.moduleMu.Unlock()

	if err := context.StartCapture(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("StartCapture after contended attach = %v, want ErrNotAttached", err)
	}
}

func TestStartBeforeAttach(t *testing.T) {
	context, hooker, _ := newTestContext(t)
	if err := context.StartCapture(); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("StartCapture before Attach = %v, want ErrNotAttached", err)
	}
	if hooker.Installs() != 0 {
		t.Errorf("%d hooks installed before Attach", hooker.Installs())
	}
}

func TestStartInstallsBothHooksAndRelaysEvents(t *testing.T) {
	context, hooker, sender := attachedContext(t)

	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	if context.State() != Hooked {
		t.Errorf("state = %v, want hooked", context.State())
	}
	if hooker.Installed() != 2 {
		t.Fatalf("installed = %d, want 2", hooker.Installed())
	}

	hooker.EmitPointer(event.Pointer{Message: event.WMLButtonDown, X: 3, Y: 4})
	hooker.EmitWindow(event.Window{Message: 0x0005, Handle: 9})
	hooker.EmitWindow(event.Window{Message: event.WMClose, Handle: 9, WParam: 1, LParam: 2})

	lines := sender.Lines()[1:]
	want := []string{
		"app.exe: mouse msg (WM_LBUTTONDOWN: 513): x/y = 3/4",
		"app.exe: WM_CLOSE of hWnd(9): wParam/lParam = 1/2",
	}
	if len(lines) != len(want) {
		t.Fatalf("relayed %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStartTwiceDoesNotDuplicate(t *testing.T) {
	context, hooker, _ := attachedContext(t)

	for range 3 {
		if err := context.StartCapture(); err != nil {
			t.Fatalf("StartCapture: %v", err)
		}
	}
	if hooker.Installs() != 2 {
		t.Errorf("installs = %d after repeated starts, want 2", hooker.Installs())
	}
}

func TestStartPartialFailureKeepsInstalledSlot(t *testing.T) {
	context, hooker, _ := attachedContext(t)
	windowFailure := errors.New("window hook refused")
	hooker.FailWindow = windowFailure

	err := context.StartCapture()
	var registration *RegistrationError
	if !errors.As(err, &registration) {
		t.Fatalf("StartCapture = %v, want *RegistrationError", err)
	}
	if registration.Pointer != nil {
		t.Errorf("pointer failure = %v, want nil", registration.Pointer)
	}
	if !errors.Is(err, windowFailure) {
		t.Errorf("error %v does not wrap the window failure", err)
	}
	if errors.Is(err, ErrBusy) {
		t.Error("registration failure reported as contention")
	}
	if context.State() != Hooked {
		t.Errorf("state = %v, want hooked with one slot", context.State())
	}

	hooker.FailWindow = nil
	if err := context.StartCapture(); err != nil {
		t.Fatalf("retry StartCapture: %v", err)
	}
	if hooker.Installs() != 2 {
		t.Errorf("installs = %d, want pointer once and window once", hooker.Installs())
	}
}

func TestStartAllFailuresStaysAttached(t *testing.T) {
	context, hooker, _ := attachedContext(t)
	hooker.FailPointer = errors.New("no pointer")
	hooker.FailWindow = errors.New("no window")

	var registration *RegistrationError
	if err := context.StartCapture(); !errors.As(err, &registration) {
		t.Fatalf("StartCapture = %v, want *RegistrationError", err)
	}
	if registration.Pointer == nil || registration.Window == nil {
		t.Errorf("registration error = %+v, want both slots", registration)
	}
	if context.State() != Attached {
		t.Errorf("state = %v, want attached", context.State())
	}
	if err := context.StopCapture(); err != nil {
		t.Errorf("StopCapture with nothing hooked = %v, want nil", err)
	}
}

func TestStopWithoutHooksIsNoOp(t *testing.T) {
	context, hooker, _ := attachedContext(t)

	if err := context.StopCapture(); err != nil {
		t.Fatalf("StopCapture = %v, want nil", err)
	}
	if context.State() != Attached {
		t.Errorf("state = %v, want attached", context.State())
	}
	if len(hooker.Released()) != 0 {
		t.Errorf("released %v with nothing hooked", hooker.Released())
	}
	if err := context.StartCapture(); err != nil {
		t.Errorf("StartCapture after no-op stop = %v", err)
	}
}

func TestStopReleasesPointerThenWindow(t *testing.T) {
	context, hooker, _ := attachedContext(t)
	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	pointer, window := context.pointer.handle, context.window.handle

	if err := context.StopCapture(); err != nil {
		t.Fatalf("StopCapture: %v", err)
	}
	released := hooker.Released()
	if len(released) != 2 || released[0] != pointer || released[1] != window {
		t.Errorf("released %v, want [%d %d]", released, pointer, window)
	}
	if context.State() != Stopped {
		t.Errorf("state = %v, want stopped", context.State())
	}
	if delivered := hooker.EmitPointer(event.Pointer{Message: event.WMMouseMove}); delivered != 0 {
		t.Errorf("pointer event reached %d hooks after stop", delivered)
	}

	if err := context.StopCapture(); err != nil {
		t.Errorf("second StopCapture = %v, want nil", err)
	}
	if len(hooker.Released()) != 2 {
		t.Errorf("handles released again: %v", hooker.Released())
	}
	if err := context.StartCapture(); !errors.Is(err, ErrStopped) {
		t.Errorf("StartCapture after stop = %v, want ErrStopped", err)
	}
}

func TestStopReleaseFailureStillReleasesOtherSlot(t *testing.T) {
	context, hooker, _ := attachedContext(t)
	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	releaseFailure := errors.New("unhook failed")
	hooker.FailRelease = releaseFailure

	err := context.StopCapture()
	var release *ReleaseError
	if !errors.As(err, &release) {
		t.Fatalf("StopCapture = %v, want *ReleaseError", err)
	}
	if release.Pointer == nil || release.Window == nil {
		t.Errorf("release error = %+v, want both slots reported", release)
	}
	if !errors.Is(err, releaseFailure) {
		t.Errorf("error %v does not wrap the release failure", err)
	}
	if len(hooker.Released()) != 2 {
		t.Errorf("released %v, want both slots attempted", hooker.Released())
	}
	if context.State() != Stopped {
		t.Errorf("state = %v, want stopped", context.State())
	}
}

func TestContendedSlotsReportBusy(t *testing.T) {
	context, hooker, _ := attachedContext(t)

	context.pointer.mu.Lock()
	if err := context.StartCapture(); !errors.Is(err, ErrBusy) {
		t.Errorf("StartCapture with pointer slot held = %v, want ErrBusy", err)
	}
	context.pointer.mu.Unlock()

	context.window.mu.Lock()
	if err := context.StartCapture(); !errors.Is(err, ErrBusy) {
		t.Errorf("StartCapture with window slot held = %v, want ErrBusy", err)
	}
	context.window.mu.Unlock()
	if !context.pointer.mu.TryLock() {
		t.Fatal("pointer slot left locked after ErrBusy")
	}
	context.pointer.mu.Unlock()
	if hooker.Installs() != 0 {
		t.Errorf("%d hooks installed under contention", hooker.Installs())
	}

	if err := context.StartCapture(); err != nil {
		t.Fatalf("StartCapture: %v", err)
	}
	context.window.mu.Lock()
	if err := context.StopCapture(); !errors.Is(err, ErrBusy) {
		t.Errorf("StopCapture with window slot held = %v, want ErrBusy", err)
	}
	context.window.mu.Unlock()
	if context.State() != Hooked {
		t.Errorf("state = %v after busy stop, want hooked", context.State())
	}
	if err := context.StopCapture(); err != nil {
		t.Errorf("StopCapture: %v", err)
	}
}

func TestConcurrentStartStopReleasesEachHandleOnce(t *testing.T) {
	context, hooker, _ := attachedContext(t)

	var group sync.WaitGroup
	for range 16 {
		group.Add(1)
		go func() {
			defer group.Done()
			for range 50 {
				context.StartCapture()
				context.StopCapture()
			}
		}()
	}
	group.Wait()

	for context.State() == Hooked {
		if err := context.StopCapture(); err != nil && !errors.Is(err, ErrBusy) {
			t.Fatalf("final StopCapture: %v", err)
		}
	}

	seen := make(map[Handle]bool)
	for _, handle := range hooker.Released() {
		if seen[handle] {
			t.Errorf("handle %d released twice", handle)
		}
		seen[handle] = true
	}
	if hooker.Installed() != 0 {
		t.Errorf("%d registrations still live after stop", hooker.Installed())
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		`C:\Windows\explorer.exe`: "explorer.exe",
		"/usr/local/bin/target":   "target",
		"relative/dir/app":        "app",
		"bare":                    "bare",
		`C:\trailing\`:            "",
	}
	for path, want := range tests {
		if got := fileName(path); got != want {
			t.Errorf("fileName(%q) = %q, want %q", path, got, want)
		}
	}
}
