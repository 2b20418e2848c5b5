// Package check locates the transcoding engine before a run (LookEngine)
// and provides the diagnostics behind the check command (RunCheck).
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/media-converter/internal/formats"
)

// ErrEngineNotFound is returned by LookEngine when the engine cannot be run.
var ErrEngineNotFound = errors.New("ffmpeg not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// LookEngine resolves engine (a bare name searched on PATH, or a path) to
// an executable path.
func LookEngine(engine string) (string, error) {
	path, err := exec.LookPath(engine)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}
	return path, nil
}

// RunCheck prints the engine version and verifies that every encoder the
// format table relies on is present in the engine build. It returns false
// when the engine is missing or any encoder is unavailable.
func RunCheck(ctx context.Context, engine string, log Logger) bool {
	log.Info("=== System Check ===")

	path, err := LookEngine(engine)
	if err != nil {
		log.Error("%v", err)
		return false
	}

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", engine, err)
	} else {
		log.Success("ffmpeg: %s", firstLine(string(out)))
	}

	out, err = exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Error("Could not list encoders: %v", err)
		return false
	}

	missing := MissingEncoders(ParseEncoders(string(out)), formats.Encoders())
	for _, ext := range formats.Supported() {
		m, _ := formats.Lookup(ext)
		if usable(m, missing) {
			log.Success("  %-5s %s", ext, describe(m))
		} else {
			log.Error("  %-5s %s (missing encoder)", ext, describe(m))
		}
	}
	if len(missing) > 0 {
		log.Error("Missing encoders: %s", strings.Join(missing, ", "))
		return false
	}
	return true
}

// ParseEncoders extracts encoder names from `ffmpeg -encoders` output.
// Entries follow the dashed separator line and look like
// " A..... libmp3lame           libmp3lame MP3 (MPEG audio layer 3)".
func ParseEncoders(listing string) map[string]bool {
	names := make(map[string]bool)
	inTable := false
	for _, line := range strings.Split(listing, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inTable {
			if strings.HasPrefix(trimmed, "---") {
				inTable = true
			}
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		names[fields[1]] = true
	}
	return names
}

// MissingEncoders returns the entries of want not present in have, in order.
func MissingEncoders(have map[string]bool, want []string) []string {
	var missing []string
	for _, w := range want {
		if !have[w] {
			missing = append(missing, w)
		}
	}
	return missing
}

// --- internal helpers ---

func usable(m formats.Mapping, missing []string) bool {
	for _, name := range missing {
		if name == m.AudioCodec || name == m.VideoCodec {
			return false
		}
	}
	return true
}

func describe(m formats.Mapping) string {
	if m.HasVideo() {
		return "audio " + m.AudioCodec + ", video " + m.VideoCodec
	}
	return "audio " + m.AudioCodec
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
