package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/media-converter/internal/check"
	"github.com/backmassage/media-converter/internal/config"
	"github.com/backmassage/media-converter/internal/logging"
	"github.com/backmassage/media-converter/internal/pipeline"
	"github.com/backmassage/media-converter/internal/prompt"
)

func (a *App) bulkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk",
		Short: "Convert every supported file in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd.Context(), config.ModeBulk, "")
		},
	}
}

func (a *App) singleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "single INPUT",
		Short: "Convert one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd.Context(), config.ModeSingle, args[0])
		},
	}
}

func (a *App) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg and every encoder the format table needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.opts
			log, err := a.openLogger(&opts)
			if err != nil {
				return err
			}
			defer log.Close()
			if !check.RunCheck(cmd.Context(), opts.EnginePath, log) {
				return exitCode(1)
			}
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			a.printVersion()
		},
	}
}

func (a *App) openLogger(opts *config.Options) (*logging.Logger, error) {
	log, err := logging.NewLogger(opts)
	if err != nil {
		return nil, err
	}
	log.SetOutput(a.Out, a.Err)
	return log, nil
}

// runConvert is shared by bulk and single:
// validate -> engine lookup -> input check -> target prompt -> enumerate -> run.
func (a *App) runConvert(ctx context.Context, mode config.Mode, input string) error {
	// Before the logger exists, errors are returned and printed by Execute.
	opts := a.opts
	opts.Mode = mode
	opts.InputPath = input
	if err := opts.Validate(); err != nil {
		return err
	}

	log, err := a.openLogger(&opts)
	if err != nil {
		return err
	}
	defer log.Close()
	log.Info("=== %s v%s (%s) ===", appName, a.Version, a.Commit)

	enginePath, err := a.lookEngine(opts.EnginePath)
	if err != nil {
		log.Error("%v", err)
		log.Error("Install ffmpeg or pass its location with --engine")
		return exitCode(1)
	}
	log.Debug("Engine: %s", enginePath)

	if mode == config.ModeSingle {
		if _, err := pipeline.ResolveSingle(input); err != nil {
			log.Error("%v", err)
			return exitCode(1)
		}
	}

	p := prompt.NewTerminal(a.In, a.Out)
	target, err := p.RequestTargetFormat()
	if err != nil {
		log.Error("%v", err)
		return exitCode(1)
	}

	files, err := pipeline.Enumerate(opts, target)
	if err != nil {
		log.Error("%v", err)
		return exitCode(1)
	}
	if len(files) == 0 {
		log.Warn("No files to convert to %s in %s", target, opts.WorkDir)
		return nil
	}

	// Cancel on SIGINT/SIGTERM so the run stops between files.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := pipeline.NewRunner(opts, target, p, a.newConverter(enginePath, log), log)
	if stats := runner.Run(ctx, files); !stats.OK() {
		return exitCode(1)
	}
	return nil
}
