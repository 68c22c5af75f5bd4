// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hookrelay is the operator CLI for the relay. It sends one-off
// messages to a running collector and replays collector archives.
package main
