// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package channel implements the point-to-point relay between capture
// components running inside target processes and the single collector
// process.
//
// The rendezvous point is a named endpoint resolved to a Unix domain
// socket path ([ResolvePath]). Every relayed line travels on its own
// short-lived connection:
//
//	target: Client.Send(line) → dial → write frame → close
//	collector: Server.Serve → accept → reader goroutine → decode → Sink.Publish
//
// The [Client] is fire-and-forget: it retries a busy endpoint a bounded
// number of times, never reads an acknowledgement, and swallows every
// failure so that a hook callback can never stall or crash on a slow or
// absent collector.
//
// The [Server] claims the endpoint as its exclusive first instance,
// accepts without bound, and gives each accepted connection its own
// reader goroutine so a stalled peer never delays acceptance of the
// next one. Output order is the order in which reads complete; no
// global sequencing is applied across connections.
package channel
