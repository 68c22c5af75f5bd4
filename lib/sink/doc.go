// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sink provides the output sinks a collector publishes relayed
// messages to: a console writer that styles lines when attached to a
// terminal, a structured-log sink, and a fan-out that feeds several
// sinks in order.
//
// Every sink implements [channel.Sink] and is safe for concurrent use,
// since the channel server publishes from one goroutine per
// connection.
package sink
