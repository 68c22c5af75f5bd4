// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of hookrelay is running.
//
// Release builds stamp the variables below with -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/hookrelay/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Unstamped builds fall back to the VCS settings the Go toolchain
// embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info formats the version as "VERSION (COMMIT[-dirty], TIME)".
func Info() string {
	commit, dirty, built := GitCommit, GitDirty == "true", BuildTime
	if commit == "unknown" {
		if info, ok := readBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					commit = shortRevision(setting.Value)
				case "vcs.modified":
					dirty = setting.Value == "true"
				case "vcs.time":
					if built == "unknown" {
						built = setting.Value
					}
				}
			}
		}
	}
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, built)
}

func shortRevision(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}

// Full adds the Go toolchain and target platform to Info.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Print writes the binary name and Info to stdout.
func Print(binary string) {
	fmt.Println(binary, Info())
}
