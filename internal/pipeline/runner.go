// Package pipeline finds input files and drives each one through overwrite
// checks, conversion, and optional source removal, one file at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/media-converter/internal/config"
	"github.com/backmassage/media-converter/internal/display"
	"github.com/backmassage/media-converter/internal/ffmpeg"
	"github.com/backmassage/media-converter/internal/formats"
	"github.com/backmassage/media-converter/internal/logging"
	"github.com/backmassage/media-converter/internal/prompt"
)

// Converter performs one blocking conversion.
type Converter interface {
	Convert(ctx context.Context, req ffmpeg.Request) error
}

// Runner processes candidate files sequentially with fixed options.
type Runner struct {
	opts     config.Options
	target   formats.Extension
	prompter prompt.Prompter
	conv     Converter
	log      *logging.Logger
}

// NewRunner returns a Runner. opts is copied and must already be validated.
func NewRunner(opts config.Options, target formats.Extension, p prompt.Prompter, conv Converter, log *logging.Logger) *Runner {
	return &Runner{opts: opts, target: target, prompter: p, conv: conv, log: log}
}

// Run converts every file in order. Per-file failures are logged and
// counted; the batch always continues to the next file. Cancellation of
// ctx stops the run between files.
func (r *Runner) Run(ctx context.Context, files []string) RunStats {
	var stats RunStats
	stats.Total = len(files)

	r.logHeader(&stats)

	for i, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			stats.Interrupted = true
			break
		}
		stats.Current = i + 1
		r.processFile(ctx, path, &stats)
	}

	if r.opts.Mode == config.ModeBulk {
		r.logSummary(&stats)
	} else {
		r.logSingleResult(&stats)
	}
	return stats
}

// processFile walks one file through
// resolve output -> overwrite check -> convert -> wipe source.
func (r *Runner) processFile(ctx context.Context, path string, stats *RunStats) {
	basename := filepath.Base(path)
	if r.opts.Mode == config.ModeBulk {
		r.log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)
	}

	source, err := formats.FromPath(path)
	if err != nil {
		r.fail(stats, fmt.Errorf("skipping %s: %w", basename, err))
		return
	}

	// --- Resolve output path ---
	// CLIP.MOV -> CLIP.mov is the same file on case-insensitive filesystems.
	outputPath := OutputPath(path, r.target)
	if source == r.target || strings.EqualFold(outputPath, path) {
		r.fail(stats, fmt.Errorf("%s is already in %s format", path, r.target))
		return
	}

	// --- Overwrite check ---
	if _, err := os.Stat(outputPath); err == nil {
		if r.opts.SkipOverwritePrompt {
			r.log.Warn("Skip (exists): %s", filepath.Base(outputPath))
			stats.Skipped++
			return
		}
		ok, err := r.prompter.ConfirmOverwrite(outputPath)
		if err != nil {
			r.log.Warn("Could not read answer (%v), skipping %s", err, basename)
			stats.Skipped++
			return
		}
		if !ok {
			r.log.Warn("Skip (kept existing): %s", filepath.Base(outputPath))
			stats.Skipped++
			return
		}
	}

	// --- Convert ---
	var inSize int64
	if fi, err := os.Stat(path); err == nil {
		inSize = fi.Size()
	}

	r.log.Info("Converting: %s -> %s", basename, filepath.Base(outputPath))
	start := time.Now()
	req := ffmpeg.Request{InputPath: path, OutputPath: outputPath, Bitrate: r.opts.Bitrate}
	if err := r.conv.Convert(ctx, req); err != nil {
		if ctx.Err() != nil {
			stats.Interrupted = true
		}
		r.fail(stats, err)
		return
	}

	var outSize int64
	if fi, err := os.Stat(outputPath); err == nil {
		outSize = fi.Size()
	}
	stats.Converted++
	stats.TotalInputBytes += inSize
	stats.TotalOutputBytes += outSize

	r.log.Success("Converted %s in %ds (%s)", filepath.Base(outputPath),
		int(time.Since(start).Seconds()), display.FormatBytes(outSize))

	// --- Wipe source ---
	if r.opts.WipeSources {
		if err := os.Remove(path); err != nil {
			r.fail(stats, fmt.Errorf("remove source %s: %w", path, err))
			return
		}
		stats.Wiped++
		r.log.Info("Removed source: %s", basename)
	}
}

// fail logs err and records it against the run. The engine's last output
// is echoed unless verbose mode already streamed it.
func (r *Runner) fail(stats *RunStats, err error) {
	r.log.Error("%v", err)
	var ce *ffmpeg.ConversionError
	if errors.As(err, &ce) && !r.log.Verbose() {
		lines := ce.TailLines(10)
		if len(lines) > 0 {
			r.log.Error("Last ffmpeg output:")
		}
		for _, l := range lines {
			r.log.Error("  %s", l)
		}
	}
	stats.recordFailure(err)
}

// --- Logging helpers ---

func (r *Runner) logHeader(stats *RunStats) {
	if r.opts.Mode == config.ModeBulk {
		r.log.Info("Found %d files to convert to %s in %s", stats.Total, r.target, r.opts.WorkDir)
	}
	r.log.Info("Audio bitrate: %s", display.FormatBitrateLabel(r.opts.Bitrate))
	if r.opts.SkipOverwritePrompt {
		r.log.Info("Existing outputs: skip without prompting")
	}
	if r.opts.WipeSources {
		r.log.Info("Sources: delete after successful conversion")
	}
}

func (r *Runner) logSingleResult(stats *RunStats) {
	switch {
	case stats.Converted == 1 && stats.Failed == 0:
		r.log.Success("Conversion complete")
	case stats.Skipped == 1:
		r.log.Info("Nothing converted")
	default:
		r.log.Error("Conversion did not complete")
	}
}

func (r *Runner) logSummary(stats *RunStats) {
	r.log.Info("==============================")
	if stats.Failed == 0 && !stats.Interrupted {
		r.log.Success("Bulk conversion complete: %d converted, %d skipped, %d failed",
			stats.Converted, stats.Skipped, stats.Failed)
	} else {
		r.log.Warn("Bulk conversion finished with problems: %d converted, %d skipped, %d failed",
			stats.Converted, stats.Skipped, stats.Failed)
	}
	if stats.Converted > 0 {
		r.log.Info("  Input %s -> output %s (%s)",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes),
			display.FormatBytesWithSign(-stats.SpaceSaved()))
	}
	if stats.Wiped > 0 {
		r.log.Info("  Sources removed: %d", stats.Wiped)
	}
}
