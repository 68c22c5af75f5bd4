// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hookrelay-target is an instrumented process: it hosts the capture
// component, installs the pointer and window hooks and relays every
// event line to a running hookrelay-collector until it is signalled.
package main
