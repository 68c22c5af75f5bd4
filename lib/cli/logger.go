// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/hookrelay/lib/config"
)

// DebugEnvVar forces debug logging when set to any non-empty value.
const DebugEnvVar = "HOOKRELAY_DEBUG"

// NewLogger creates the diagnostic logger for a binary. With format
// "auto", output is slog.TextHandler when stderr is a terminal and
// slog.JSONHandler when it is piped or redirected, so scripts and
// tests get machine-parseable records.
//
// Callers scope the logger with With():
//
//	logger := cli.NewLogger(cfg.Log).With("binary", "hookrelay-collector")
func NewLogger(options config.LogConfig) (*slog.Logger, error) {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), options)
}

func newLogger(w io.Writer, terminal bool, options config.LogConfig) (*slog.Logger, error) {
	level, err := parseLevel(options.Level)
	if err != nil {
		return nil, err
	}
	if os.Getenv(DebugEnvVar) != "" {
		level = slog.LevelDebug
	}
	handlerOptions := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch options.Format {
	case "text":
		handler = slog.NewTextHandler(w, handlerOptions)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOptions)
	case "", "auto":
		if terminal {
			handler = slog.NewTextHandler(w, handlerOptions)
		} else {
			handler = slog.NewJSONHandler(w, handlerOptions)
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", options.Format)
	}
	return slog.New(handler), nil
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
