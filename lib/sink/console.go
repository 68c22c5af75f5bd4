// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/hookrelay/lib/channel"
)

// ColorMode selects whether console output is styled.
type ColorMode string

const (
	// ColorAuto styles output only when the writer is a terminal and
	// NO_COLOR is unset.
	ColorAuto ColorMode = "auto"

	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"

	// ColorNever writes plain text.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a color mode name. The empty string is auto.
func ParseColorMode(name string) (ColorMode, error) {
	switch ColorMode(name) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always, or never)", name)
	}
}

// consoleTimeFormat is the receive-time column layout.
const consoleTimeFormat = "15:04:05.000"

// Console writes one line per message: receive time, peer pid when
// known, and the message text.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	timeStyle lipgloss.Style
	pidStyle  lipgloss.Style
	textStyle lipgloss.Style
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, mode ColorMode) *Console {
	profile := termenv.Ascii
	if shouldStyle(out, mode) {
		profile = termenv.ANSI256
	}

	// The renderer would otherwise re-detect the profile from the
	// environment and ignore the one chosen here.
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Console{
		out:       out,
		timeStyle: renderer.NewStyle().Foreground(lipgloss.Color("245")),
		pidStyle:  renderer.NewStyle().Foreground(lipgloss.Color("39")),
		textStyle: renderer.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Publish writes message as a single line. Terminal escape sequences a
// peer embedded in its text are removed, and newlines are kept on the
// line as escaped text, so one message is always one plain line.
func (c *Console) Publish(message channel.Message) {
	var line strings.Builder
	line.WriteString(c.timeStyle.Render(message.ReceivedAt.Format(consoleTimeFormat)))
	line.WriteByte(' ')
	if message.PeerPID > 0 {
		line.WriteString(c.pidStyle.Render("[" + strconv.Itoa(int(message.PeerPID)) + "]"))
		line.WriteByte(' ')
	}
	line.WriteString(c.textStyle.Render(flatten(message.Text)))
	line.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, line.String())
}

func shouldStyle(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// flatten folds line breaks and drops escape sequences.
func flatten(text string) string {
	return ansi.Strip(lineBreaks.Replace(text))
}
