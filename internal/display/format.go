// Package display formats sizes and rates for log output.
package display

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable size in IEC units (B, KiB, MiB, ...).
// Negative values are formatted by magnitude.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = -bytes
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 MiB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
	}
	return sign + FormatBytes(bytes)
}

// FormatBitrateLabel turns an engine bitrate ("128k") into a label ("128 kbps").
// Values without the k suffix are returned unchanged.
func FormatBitrateLabel(bitrate string) string {
	if n, ok := strings.CutSuffix(bitrate, "k"); ok && n != "" {
		return n + " kbps"
	}
	return bitrate
}
