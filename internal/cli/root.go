// Package cli builds the cobra command tree and maps every outcome to a
// process exit status.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/media-converter/internal/check"
	"github.com/backmassage/media-converter/internal/config"
	"github.com/backmassage/media-converter/internal/ffmpeg"
	"github.com/backmassage/media-converter/internal/logging"
	"github.com/backmassage/media-converter/internal/pipeline"
)

const appName = "media-converter"

// ErrInvalidFlag wraps every flag parsing failure.
var ErrInvalidFlag = errors.New("invalid flag")

var (
	errVersionShown = errors.New("version shown")
	errNoCommand    = errors.New("no command given")
)

// exitError carries a status for failures that were already reported
// through the logger.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitCode(code int) error { return &exitError{code: code} }

// App owns the streams and build metadata for one invocation.
type App struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Version string
	Commit  string

	opts        config.Options
	showVersion bool

	lookEngine   func(engine string) (string, error)
	newConverter func(engine string, log *logging.Logger) pipeline.Converter
}

// New returns an App wired to the real engine.
func New(in io.Reader, out, errOut io.Writer, version, commit string) *App {
	a := &App{
		In:      in,
		Out:     out,
		Err:     errOut,
		Version: version,
		Commit:  commit,
		opts:    config.DefaultOptions(),
	}
	a.lookEngine = check.LookEngine
	a.newConverter = a.engineConverter
	return a
}

// Execute parses args, runs the selected command and returns the exit
// status.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	err := root.ExecuteContext(ctx)
	var ee *exitError
	switch {
	case err == nil, errors.Is(err, errVersionShown):
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(a.Err, "%s: %v\n", appName, err)
		return 1
	}
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [flags] command",
		Short: "Convert audio and video files between common formats with ffmpeg",
		Long: `media-converter converts one file (single) or every supported file in a
directory (bulk) to a target format chosen at a prompt. Codecs are fixed
per format; the audio bitrate is set with -b.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.showVersion {
				a.printVersion()
				return errVersionShown
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.Err, cmd.UsageString())
			if len(args) == 0 {
				return errNoCommand
			}
			return fmt.Errorf("unknown command %q", args[0])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	config.BindFlags(pf, &a.opts)
	pf.BoolVarP(&a.showVersion, "version", "v", false, "Print version and exit")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	})

	root.AddCommand(
		a.bulkCommand(),
		a.singleCommand(),
		a.checkCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *App) printVersion() {
	fmt.Fprintf(a.Out, "%s v%s\n", appName, a.Version)
}

// engineConverter is the production converter: ffmpeg output is streamed
// only in verbose mode, and command lines are logged at debug level.
func (a *App) engineConverter(engine string, log *logging.Logger) pipeline.Converter {
	opts := []ffmpeg.Option{
		ffmpeg.WithCommandHook(func(args []string) {
			log.Debug("Command: %s", ffmpeg.CommandLine(args))
		}),
	}
	if log.Verbose() {
		opts = append(opts, ffmpeg.WithStderr(a.Err))
	}
	return ffmpeg.NewConverter(engine, opts...)
}

// Main runs the CLI against the process streams.
func Main(ctx context.Context, args []string, version, commit string) int {
	return New(os.Stdin, os.Stdout, os.Stderr, version, commit).Execute(ctx, args)
}
