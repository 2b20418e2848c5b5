package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ExecResult holds the outcome of a single engine invocation.
type ExecResult struct {
	Stderr   string
	ExitCode int // -1 when the process did not start or was killed.
	Err      error
}

// Execute runs args (engine first) and waits for it to exit. Stderr is
// always captured for diagnosis; when tee is non-nil it is also copied
// there in real time.
func Execute(ctx context.Context, args []string, tee io.Writer) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := ExecResult{Stderr: stderrBuf.String(), Err: err}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
	}
	return res
}
