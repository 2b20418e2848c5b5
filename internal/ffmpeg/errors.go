package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrConversionFailed matches every *ConversionError via errors.Is.
var ErrConversionFailed = errors.New("conversion failed")

// ConversionError reports a non-zero engine exit for one input file.
type ConversionError struct {
	InputPath string
	ExitCode  int
	Hint      string // Diagnosis from stderr; may be empty.
	Stderr    string
	Err       error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion failed for %s", e.InputPath)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Is makes errors.Is(err, ErrConversionFailed) true.
func (e *ConversionError) Is(target error) bool { return target == ErrConversionFailed }

func (e *ConversionError) Unwrap() error { return e.Err }

// TailLines returns at most n trailing non-empty lines of the captured stderr.
func (e *ConversionError) TailLines(n int) []string {
	s := strings.TrimSpace(e.Stderr)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Pre-compiled patterns for classifying engine stderr. Checked in order by
// Diagnose; the first match wins.
var (
	reUnknownEncoder = regexp.MustCompile(
		`Unknown encoder '([^']+)'|Encoder \(codec [^)]*\) not found|Encoder not found`)

	reInvalidInput = regexp.MustCompile(
		`Invalid data found when processing input|could not find codec parameters|moov atom not found`)

	reMissingFile = regexp.MustCompile(`No such file or directory`)

	rePermission = regexp.MustCompile(`Permission denied|Read-only file system`)

	reNoStreams = regexp.MustCompile(
		`(?i)Output file (#\d+ )?does not contain any stream|Stream map .* matches no streams`)
)

// Diagnose turns engine stderr into a short human hint, or "" when no
// known pattern matches.
func Diagnose(stderr string) string {
	if m := reUnknownEncoder.FindStringSubmatch(stderr); m != nil {
		if len(m) > 1 && m[1] != "" {
			return fmt.Sprintf("encoder %s is not available in this ffmpeg build", m[1])
		}
		return "required encoder is not available in this ffmpeg build"
	}
	if reInvalidInput.MatchString(stderr) {
		return "input is not a readable media file"
	}
	if reMissingFile.MatchString(stderr) {
		return "a file or directory does not exist"
	}
	if rePermission.MatchString(stderr) {
		return "permission denied"
	}
	if reNoStreams.MatchString(stderr) {
		return "input has no stream the target format can hold"
	}
	return ""
}
