// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hookrelay packages.
//
// [SocketDir] creates a short temporary directory for Unix domain
// sockets. Socket paths are limited to 108 bytes (sun_path), and
// t.TempDir() paths under nested build sandboxes can exceed that.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// safety valve so tests never block forever on a channel. They are the
// only place in the test suite that uses real wall-clock timeouts.
//
// [UniqueID] produces distinguishable message bodies for tests that
// send many relay messages concurrently.
//
// This package has no hookrelay-internal dependencies.
package testutil
