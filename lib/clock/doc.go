// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so that waits
// in the relay, such as the channel client's retry pause, can be driven
// deterministically in tests.
//
// Production code holds a Clock field set to Real(). Tests use Fake()
// and advance it explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	client := channel.NewClient(path, channel.ClientOptions{Clock: c})
//	go client.Send("hello")
//	c.WaitForTimers(1)
//	c.Advance(10 * time.Millisecond)
//
// WaitForTimers blocks until goroutines have registered the given
// number of pending waits, which removes the race between a goroutine
// calling Sleep and the test calling Advance.
package clock
