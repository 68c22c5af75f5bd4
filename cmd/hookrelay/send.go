// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hookrelay/lib/cli"
	"github.com/bureau-foundation/hookrelay/lib/config"
)

// sendCmd delivers one message. Unlike the capture component it
// reports delivery failures, so an operator can tell whether a
// collector is listening.
func sendCmd(args []string) error {
	var (
		configPath   string
		endpointName string
	)
	flagSet := pflag.NewFlagSet("hookrelay send", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a hookrelay config file (default: $HOOKRELAY_CONFIG)")
	flagSet.StringVar(&endpointName, "endpoint", "", "endpoint name or socket path (overrides endpoint.name)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() == 0 {
		return errors.New("usage: hookrelay send [flags] <text>...")
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	path, err := cli.EndpointPath(cfg, endpointName)
	if err != nil {
		return err
	}

	text := strings.Join(flagSet.Args(), " ")
	if err := cli.NewClient(cfg, path).Deliver(text); err != nil {
		return fmt.Errorf("sending to %s: %w", path, err)
	}
	return nil
}
