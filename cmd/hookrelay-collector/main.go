// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hookrelay/lib/capture"
	"github.com/bureau-foundation/hookrelay/lib/channel"
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

	flagSet := pflag.NewFlagSet("hookrelay-collector", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a hookrelay config file (default: $HOOKRELAY_CONFIG)")
	flagSet.StringVar(&endpointName, "endpoint", "", "endpoint name or socket path (overrides endpoint.name)")
	flagSet.BoolVar(&synthetic, "synthetic", false, "capture a synthetic event timeline instead of OS hooks")
	flagSet.DurationVar(&syntheticInterval, "synthetic-interval", capture.DefaultSyntheticInterval, "spacing between synthetic events")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		version.Print("hookrelay-collector")
		return nil
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if endpointName != "" {
		cfg.Endpoint.Name = endpointName
	}
	logger, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logger = logger.With("binary", "hookrelay-collector")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hooker := capture.DefaultHooker()
	if synthetic {
		hooker = capture.NewSyntheticHooker(capture.SyntheticOptions{Interval: syntheticInterval, Repeat: true})
	}

	// The collector hosts the capture component in its own process and
	// relays through the endpoint the component reports.
	endpointPath, err := cli.EndpointPath(cfg, "")
	if err != nil {
		return err
	}
	captureContext := capture.NewContext(capture.Options{
		Hooker: hooker,
		Sender: cli.NewClient(cfg, endpointPath),
		Logger: logger.With("component", "capture"),
	})
	component := capture.NewComponent(captureContext, cfg.Endpoint.Name, logger)

	var relay *cli.Relay
	if name, ok := component.EndpointName(); ok {
		relay, err = startRelay(cfg, name, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("capture component reports no endpoint, not listening")
	}
	// Drains readers before the archive closes, on every return path.
	shutdownRelay := func() error {
		if relay == nil {
			return nil
		}
		return relay.Shutdown()
	}
	defer shutdownRelay()

	module, modulePath := capture.CurrentModule()
	captureContext.Attach(module, modulePath)

	if result := component.SelfTest(); result != capture.SelfTestValue {
		return fmt.Errorf("capture component self-test returned %d, want %d", result, capture.SelfTestValue)
	}

	err = capture.RunHookLoop(ctx, func() error {
		if component.StartHook() != 0 {
			return errors.New("starting capture hooks failed")
		}
		logger.Info("capturing, interrupt to stop")
		return nil
	})
	if err != nil {
		return err
	}

	if component.StopHook() != 0 {
		logger.Warn("stopping capture hooks reported a failure")
	}
	captureContext.Detach()

	return shutdownRelay()
}

// startRelay starts the relay listener. Losing the first-instance
// claim is fatal to the listener only: the collector keeps running and
// its own events go to whichever server owns the endpoint.
func startRelay(cfg *config.Config, name string, logger *slog.Logger) (*cli.Relay, error) {
	path, err := cli.EndpointPath(cfg, name)
	if err != nil {
		return nil, err
	}
	relay, err := cli.StartRelay(cfg, path, os.Stdout, logger)
	if errors.Is(err, channel.ErrEndpointInUse) {
		logger.Error("relay endpoint already owned, continuing without a listener", "path", path, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("starting relay server: %w", err)
	}
	return relay, nil
}
