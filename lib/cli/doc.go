// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the wiring shared by the hookrelay binaries: the
// diagnostic logger, and translation of a loaded [config.Config] into
// channel clients, servers and collector sinks.
package cli
