// Package ffmpeg builds and runs the single ffmpeg invocation that
// converts one input file to the target format.
package ffmpeg

import (
	"fmt"

	"github.com/backmassage/media-converter/internal/formats"
)

// Fixed video quality settings used for every video-capable target.
const (
	VideoCRF    = "23"
	VideoPreset = "medium"

	// DefaultBitrate applies when a Request carries no bitrate.
	DefaultBitrate = "128k"
)

// Request describes one conversion. Bitrate is in engine form ("128k").
type Request struct {
	InputPath  string
	OutputPath string
	Bitrate    string
}

// Build constructs the complete argument slice, engine first, for req.
// Codecs come from the output path's extension; an extension without a
// mapping fails with formats.ErrUnsupportedFormat.
//
//	<engine> -hide_banner -nostdin -y -loglevel error -i IN
//	         [-c:v V -crf 23 -preset medium | -vn]
//	         -c:a A -b:a BITRATE OUT
func Build(engine string, req Request) ([]string, error) {
	ext, err := formats.FromPath(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", req.OutputPath, err)
	}
	m, err := formats.Lookup(ext)
	if err != nil {
		return nil, err
	}

	bitrate := req.Bitrate
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	args := make([]string, 0, 24)

	// --- Preamble: no engine-side prompts ---
	args = append(args, engine, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Input ---
	args = append(args, "-i", req.InputPath)

	// --- Video ---
	if m.HasVideo() {
		args = append(args, "-c:v", m.VideoCodec, "-crf", VideoCRF, "-preset", VideoPreset)
	} else {
		args = append(args, "-vn")
	}

	// --- Audio ---
	args = append(args, "-c:a", m.AudioCodec, "-b:a", bitrate)

	// --- Output ---
	args = append(args, req.OutputPath)

	return args, nil
}
