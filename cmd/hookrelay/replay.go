// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hookrelay/lib/archive"
	"github.com/bureau-foundation/hookrelay/lib/sink"
)

// replayCmd prints an archive through the same console formatting the
// collector uses. An archive truncated mid-record prints everything
// before the cut and then reports the truncation.
func replayCmd(args []string, stdout io.Writer) error {
	var color string
	flagSet := pflag.NewFlagSet("hookrelay replay", pflag.ContinueOnError)
	flagSet.StringVar(&color, "color", "auto", "style output: auto, always, or never")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return errors.New("usage: hookrelay replay [flags] <archive>")
	}
	mode, err := sink.ParseColorMode(color)
	if err != nil {
		return err
	}

	reader, err := archive.Open(flagSet.Arg(0))
	if err != nil {
		return err
	}
	defer reader.Close()

	console := sink.NewConsole(stdout, mode)
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("replaying %s: %w", flagSet.Arg(0), err)
		}
		console.Publish(record.Message())
	}
}
