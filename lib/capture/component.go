// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import "log/slog"

// SelfTestValue is the fixed value SelfTest returns so a host can
// confirm it bound the component it expected.
const SelfTestValue = 334

// Component is the surface a host process binds to. Results are plain
// integers: 0 for success and 1 for failure.
type Component struct {
	context  *Context
	endpoint string
	logger   *slog.Logger
}

// NewComponent wraps a Context. endpointName is reported by
// EndpointName; empty means the component relays nowhere and the host
// should not start a listener.
func NewComponent(context *Context, endpointName string, logger *slog.Logger) *Component {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Component{context: context, endpoint: endpointName, logger: logger}
}

// SelfTest returns SelfTestValue.
func (c *Component) SelfTest() int {
	return SelfTestValue
}

// StartHook installs the capture hooks.
func (c *Component) StartHook() int {
	if err := c.context.StartCapture(); err != nil {
		c.logger.Warn("start hook failed", "error", err)
		return 1
	}
	return 0
}

// StopHook releases the capture hooks.
func (c *Component) StopHook() int {
	if err := c.context.StopCapture(); err != nil {
		c.logger.Warn("stop hook failed", "error", err)
		return 1
	}
	return 0
}

// EndpointName returns the channel endpoint name the component sends
// to, if it has one.
func (c *Component) EndpointName() (string, bool) {
	return c.endpoint, c.endpoint != ""
}
