// Package term resolves whether terminal output should be colored.
//
// The decision is made once during startup from the configured
// [config.ColorMode]; fatih/color's global switch is set accordingly so
// every color.Color created afterwards follows it.
package term

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/backmassage/media-converter/internal/config"
)

// Configure resolves mode and applies it to fatih/color. It returns
// whether colors ended up enabled. Call once during startup (from
// [logging.NewLogger]).
func Configure(mode config.ColorMode) bool {
	enabled := Resolve(mode)
	color.NoColor = !enabled
	return enabled
}

// Resolve determines whether colors should be enabled based on the
// configured mode, TTY detection, and the NO_COLOR env var
// (https://no-color.org).
func Resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
