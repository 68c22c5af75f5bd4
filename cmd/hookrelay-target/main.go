// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hookrelay/lib/capture"
	"github.com/bureau-foundation/hookrelay/lib/cli"
	"github.com/bureau-foundation/hookrelay/lib/config"
	"github.com/bureau-foundation/hookrelay/lib/process"
	"github.com/bureau-foundation/hookrelay/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath        string
		endpointName      string
		synthetic         bool
		syntheticInterval time.Duration
		showVersion       bool
	)

	flagSet := pflag.NewFlagSet("hookrelay-target", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a hookrelay config file (default: $HOOKRELAY_CONFIG)")
	flagSet.StringVar(&endpointName, "endpoint", "", "endpoint name or socket path (overrides endpoint.name)")
	flagSet.BoolVar(&synthetic, "synthetic", false, "capture a repeating synthetic event timeline instead of OS hooks")
	flagSet.DurationVar(&syntheticInterval, "synthetic-interval", capture.DefaultSyntheticInterval, "spacing between synthetic events")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		version.Print("hookrelay-target")
		return nil
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logger = logger.With("binary", "hookrelay-target")

	endpointPath, err := cli.EndpointPath(cfg, endpointName)
	if err != nil {
		return err
	}

	hooker := capture.DefaultHooker()
	if synthetic {
		hooker = capture.NewSyntheticHooker(capture.SyntheticOptions{Interval: syntheticInterval, Repeat: true})
	}
	captureContext := capture.NewContext(capture.Options{
		Hooker: hooker,
		Sender: cli.NewClient(cfg, endpointPath),
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	module, modulePath := capture.CurrentModule()
	captureContext.Attach(module, modulePath)
	defer captureContext.Detach()

	logger.Info("relaying captured events", "endpoint", endpointPath)
	err = capture.RunHookLoop(ctx, func() error {
		err := captureContext.StartCapture()
		var registration *capture.RegistrationError
		if errors.As(err, &registration) && captureContext.State() == capture.Hooked {
			// One hook installed; keep relaying what it captures.
			logger.Warn("capture running with a partial hook set", "error", err)
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	if err := captureContext.StopCapture(); err != nil {
		logger.Warn("releasing capture hooks", "error", err)
	}
	return nil
}
