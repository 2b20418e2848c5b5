package config

// This file binds Options to a pflag.FlagSet. The command tree lives in the
// cli package; flags shared by every command are registered here so the
// defaults stay next to DefaultOptions.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// BindFlags registers the run flags on fs, writing into o. Call it on a
// persistent flag set so flags may appear before or after the command name.
func BindFlags(fs *pflag.FlagSet, o *Options) {
	defineBehaviorFlags(fs, o)
	defineDisplayFlags(fs, o)
}

// defineBehaviorFlags registers -b/--bitrate, -s/--skip, -w/--wipe, --dir, --engine.
func defineBehaviorFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.Bitrate, "bitrate", "b", o.Bitrate, "Audio bitrate in kbps")
	fs.BoolVarP(&o.SkipOverwritePrompt, "skip", "s", false, "Skip files whose output already exists, without prompting")
	fs.BoolVarP(&o.WipeSources, "wipe", "w", false, "Delete source files after successful conversion")
	fs.StringVar(&o.WorkDir, "dir", o.WorkDir, "Directory scanned in bulk mode")
	fs.StringVar(&o.EnginePath, "engine", o.EnginePath, "ffmpeg executable name or path")
}

// defineDisplayFlags registers --verbose, --color, --no-color and -l/--log.
func defineDisplayFlags(fs *pflag.FlagSet, o *Options) {
	fs.BoolVar(&o.Verbose, "verbose", false, "Log ffmpeg command lines and output")
	fs.Var(&colorModeValue{&o.ColorMode}, "color", "Colored logs: auto | always | never")
	fs.Lookup("color").NoOptDefVal = string(ColorAlways)
	fs.Var(&noColorValue{&o.ColorMode}, "no-color", "Disable colored logs")
	fs.Lookup("no-color").NoOptDefVal = "true"
	fs.StringVarP(&o.LogFile, "log", "l", "", "Append logs to file")
}

// pflag.Value adapters for enum-typed fields.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always", "true":
		*c.p = ColorAlways
	case "never", "false":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type noColorValue struct{ p *ColorMode }

func (n *noColorValue) String() string { return "false" }
func (n *noColorValue) Type() string   { return "bool" }
func (n *noColorValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1":
		*n.p = ColorNever
	case "false", "0":
		// leave the current mode alone
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	return nil
}
