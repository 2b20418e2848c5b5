// Package config holds run options: defaults, CLI flag binding, and
// validation. Options are filled once from flags, validated, and then
// passed by value so nothing downstream can change them mid-run.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Mode selects how input files are found.
type Mode string

const (
	ModeSingle Mode = "single" // One explicitly named input file.
	ModeBulk   Mode = "bulk"   // Every supported file in the working directory.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Options holds all runtime settings for one conversion run.
type Options struct {
	// Input selection.
	Mode      Mode
	InputPath string // Single mode only.
	WorkDir   string // Bulk mode directory. Default: ".".

	// Behavior flags.
	SkipOverwritePrompt bool   // -s: never prompt, skip existing outputs.
	WipeSources         bool   // -w: delete inputs after successful conversion.
	Bitrate             string // Default: "128". Normalized to "<n>k" by Validate.

	// Engine.
	EnginePath string // Default: "ffmpeg".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultOptions returns Options with every default applied. Mode and
// InputPath are left empty; the CLI sets them from the chosen command.
func DefaultOptions() Options {
	return Options{
		WorkDir:    ".",
		Bitrate:    "128",
		EnginePath: "ffmpeg",
		ColorMode:  ColorAuto,
	}
}

// Validate checks enum fields and mode-specific requirements and normalizes
// the bitrate to the engine form ("128" -> "128k").
func (o *Options) Validate() error {
	switch o.Mode {
	case ModeSingle:
		if o.InputPath == "" {
			return errors.New("single mode needs an input file")
		}
	case ModeBulk:
		if o.WorkDir == "" {
			o.WorkDir = "."
		}
	default:
		return fmt.Errorf("invalid mode %q (use 'single' or 'bulk')", o.Mode)
	}

	switch o.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", o.ColorMode)
	}

	if strings.TrimSpace(o.EnginePath) == "" {
		return errors.New("engine path must not be empty")
	}

	normalized, err := NormalizeBitrate(o.Bitrate)
	if err != nil {
		return err
	}
	o.Bitrate = normalized
	return nil
}

// NormalizeBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "128", "128k", "128K", "128kbps". Output is "<n>k".
func NormalizeBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid bitrate %q (use positive Kbps value, e.g. 128)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
