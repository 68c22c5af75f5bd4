// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for hookrelay binaries.
//
// Configuration is loaded from a single file specified by either the
// HOOKRELAY_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no search path and no ~/.config discovery.
// A binary started with neither runs on [Default].
//
// Files ending in .yaml or .yml are parsed as YAML. Files ending in
// .json or .jsonc are parsed as JSON with comments and trailing commas
// allowed. Any other extension is rejected.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${XDG_RUNTIME_DIR}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// This package depends on no other hookrelay packages.
package config
