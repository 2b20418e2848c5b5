// Package prompt reads interactive answers: the target format chosen once
// per run, and per-file overwrite confirmations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/media-converter/internal/formats"
)

// Prompter asks the user for run decisions. The pipeline depends on this
// interface so tests can supply canned answers.
type Prompter interface {
	RequestTargetFormat() (formats.Extension, error)
	ConfirmOverwrite(path string) (bool, error)
}

// Terminal is a line-oriented Prompter over a reader/writer pair,
// normally stdin and stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a Terminal reading answers from in and writing
// questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// RequestTargetFormat shows the supported formats and reads one line. The
// answer is trimmed and lower-cased; anything outside the supported set
// fails with formats.ErrUnsupportedFormat.
func (t *Terminal) RequestTargetFormat() (formats.Extension, error) {
	fmt.Fprintf(t.out, "Supported formats: %s\n", formats.SupportedList())
	fmt.Fprint(t.out, "Convert to: ")

	answer, err := t.readLine()
	if err != nil && answer == "" {
		return "", fmt.Errorf("read target format: %w", err)
	}
	ext, err := formats.Parse(strings.ToLower(answer))
	if err != nil {
		return "", fmt.Errorf("target %q: %w", answer, formats.ErrUnsupportedFormat)
	}
	return ext, nil
}

// ConfirmOverwrite asks whether path may be replaced. Only "y" (any case)
// accepts; every other answer, including end of input, declines.
func (t *Terminal) ConfirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(t.out, "%s already exists. Overwrite? [y/N]: ", path)

	answer, err := t.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// readLine returns the next line without its terminator and surrounding
// spaces. A final unterminated line is returned together with io.EOF.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	return strings.TrimSpace(line), err
}
