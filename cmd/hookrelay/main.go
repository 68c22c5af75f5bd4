// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hookrelay is the operator CLI for the event relay.
//
// Usage:
//
//	hookrelay send [flags] <text>...
//	hookrelay replay [flags] <archive>
//	hookrelay version
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/hookrelay/lib/process"
	"github.com/bureau-foundation/hookrelay/lib/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "send":
		err = sendCmd(args)
	case "replay":
		err = replayCmd(args, os.Stdout)
	case "version", "--version", "-v":
		version.Print("hookrelay")
		return
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		process.Fatal(err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `hookrelay - operator CLI for the capture event relay

USAGE
    hookrelay <command> [flags] [args...]

COMMANDS
    send      Deliver one message to the collector endpoint
    replay    Print the messages stored in a collector archive
    version   Show version

EXAMPLES
    # Check that a collector is listening on the default endpoint
    hookrelay send "hello from the operator"

    # Send to a collector started with --endpoint
    hookrelay send --endpoint=/run/user/1000/relay.sock "ping"

    # Replay an archive without color
    hookrelay replay --color=never ~/relay.archive

ENVIRONMENT
    HOOKRELAY_CONFIG   Path to the hookrelay config file
    HOOKRELAY_DEBUG    Enable debug logging
    XDG_RUNTIME_DIR    Directory endpoint sockets are created in
`)
}
