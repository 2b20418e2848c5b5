package ffmpeg

import (
	"context"
	"io"
	"strings"
)

// Converter runs one engine process per Convert call.
type Converter struct {
	engine string
	tee    io.Writer
	onArgs func([]string)
}

// Option configures a Converter.
type Option func(*Converter)

// WithStderr copies engine stderr to w while it runs.
func WithStderr(w io.Writer) Option {
	return func(c *Converter) { c.tee = w }
}

// WithCommandHook calls fn with the full argument list before each run.
func WithCommandHook(fn func(args []string)) Option {
	return func(c *Converter) { c.onArgs = fn }
}

// NewConverter returns a Converter invoking engine (a name on PATH or a path).
func NewConverter(engine string, opts ...Option) *Converter {
	c := &Converter{engine: engine}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Convert builds and runs the invocation for req, blocking until the engine
// exits. An unmapped output extension returns formats.ErrUnsupportedFormat;
// a failed run returns a *ConversionError.
func (c *Converter) Convert(ctx context.Context, req Request) error {
	args, err := Build(c.engine, req)
	if err != nil {
		return err
	}
	if c.onArgs != nil {
		c.onArgs(args)
	}

	res := Execute(ctx, args, c.tee)
	if res.Err == nil {
		return nil
	}
	return &ConversionError{
		InputPath: req.InputPath,
		ExitCode:  res.ExitCode,
		Hint:      Diagnose(res.Stderr),
		Stderr:    res.Stderr,
		Err:       res.Err,
	}
}

// CommandLine renders args for logging, quoting arguments that contain spaces.
func CommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t'\"") {
			parts[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
