// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultEndpointName is the endpoint name compiled into both the
// collector and the capture component.
const DefaultEndpointName = "named-pipe-for-dll-hook-message"

// pipeNamespace is the Win32 named pipe prefix. Names written in that
// form resolve to the same socket as the bare name.
const pipeNamespace = `\\.\pipe\`

// RuntimeDir returns the directory endpoint sockets live in:
// $XDG_RUNTIME_DIR when set, otherwise the OS temporary directory.
func RuntimeDir() string {
	if directory := os.Getenv("XDG_RUNTIME_DIR"); directory != "" {
		return directory
	}
	return os.TempDir()
}

// ResolvePath maps an endpoint name to a socket path. An absolute path
// is returned unchanged. A bare name becomes "<runtimeDir>/<name>.sock";
// an empty runtimeDir means [RuntimeDir]. Names may not contain path
// separators, so two processes resolving the same name always meet at
// the same path.
func ResolvePath(name, runtimeDir string) (string, error) {
	if name == "" {
		return "", errors.New("endpoint name is empty")
	}
	if bare, ok := strings.CutPrefix(name, pipeNamespace); ok {
		name = bare
	} else if filepath.IsAbs(name) {
		return name, nil
	}
	if name == "" {
		return "", fmt.Errorf("endpoint name %q has nothing after the pipe prefix", pipeNamespace)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("endpoint name %q must not contain path separators", name)
	}
	if runtimeDir == "" {
		runtimeDir = RuntimeDir()
	}
	return filepath.Join(runtimeDir, name+".sock"), nil
}
