// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for hookrelay
// binaries: fatal error reporting to stderr before (or instead of) the
// structured logger, and the matching process exit.
package process
