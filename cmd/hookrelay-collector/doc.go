// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hookrelay-collector listens on the relay endpoint and prints every
// message instrumented processes send to it. It also hosts the capture
// component itself, so events from its own process are relayed through
// the same endpoint, and optionally archives what it receives.
package main
