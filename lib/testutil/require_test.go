// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type recordingTB struct {
	failures []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestRequireReceiveReturnsValue(t *testing.T) {
	ch := make(chan string, 1)
	ch <- "hello"
	if got := RequireReceive(t, ch, time.Second, "hello"); got != "hello" {
		t.Fatalf("RequireReceive = %q, want hello", got)
	}
}

func TestRequireReceiveReportsClosedChannel(t *testing.T) {
	recorder := &recordingTB{}
	ch := make(chan int)
	close(ch)
	RequireReceive(recorder, ch, time.Second, "message %d", 3)
	if len(recorder.failures) != 1 || !strings.HasPrefix(recorder.failures[0], "message 3: channel closed") {
		t.Fatalf("failures = %q", recorder.failures)
	}
}

func TestRequireNoReceiveFailsOnValue(t *testing.T) {
	recorder := &recordingTB{}
	ch := make(chan int, 1)
	ch <- 7
	RequireNoReceive(recorder, ch, time.Second)
	if len(recorder.failures) != 1 || !strings.Contains(recorder.failures[0], "unexpected value 7") {
		t.Fatalf("failures = %q", recorder.failures)
	}
}

func TestRequireClosedTimesOut(t *testing.T) {
	recorder := &recordingTB{}
	RequireClosed(recorder, make(chan struct{}), time.Millisecond, "ready")
	if len(recorder.failures) != 1 || !strings.HasPrefix(recorder.failures[0], "ready: channel not closed") {
		t.Fatalf("failures = %q", recorder.failures)
	}
}

func TestUniqueIDIsDistinct(t *testing.T) {
	first, second := UniqueID("client"), UniqueID("client")
	if first == second || !strings.HasPrefix(first, "client-") {
		t.Fatalf("UniqueID gave %q and %q", first, second)
	}
}
