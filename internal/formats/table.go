// Package formats holds the fixed table of supported target extensions and
// the audio/video encoder pair ffmpeg uses for each.
//
// The set of extensions is closed: [Extension] values outside [Supported]
// are rejected by [Parse] and [Lookup] with [ErrUnsupportedFormat].
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when an extension has no codec mapping.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Extension is a container file extension, lowercase, without the dot.
type Extension string

const (
	OGG  Extension = "ogg"
	WAV  Extension = "wav"
	FLAC Extension = "flac"
	AAC  Extension = "aac"
	OPUS Extension = "opus"
	MP3  Extension = "mp3"
	MP4  Extension = "mp4"
	MKV  Extension = "mkv"
	WEBM Extension = "webm"
	M4A  Extension = "m4a"
	AVI  Extension = "avi"
	MOV  Extension = "mov"
	WMV  Extension = "wmv"
	FLV  Extension = "flv"
	M4V  Extension = "m4v"
	MPEG Extension = "mpeg"
	MPG  Extension = "mpg"
)

// supported is the table order. Bulk discovery walks extensions in this order.
var supported = [...]Extension{
	OGG, WAV, FLAC, AAC, OPUS, MP3, MP4, MKV, WEBM,
	M4A, AVI, MOV, WMV, FLV, M4V, MPEG, MPG,
}

// Mapping is the encoder pair for one target extension. VideoCodec is empty
// for audio-only containers.
type Mapping struct {
	Extension  Extension
	AudioCodec string
	VideoCodec string
}

// HasVideo reports whether the target container carries a video stream.
func (m Mapping) HasVideo() bool { return m.VideoCodec != "" }

// Supported returns every supported extension in table order. The returned
// slice is a copy.
func Supported() []Extension {
	out := make([]Extension, len(supported))
	copy(out, supported[:])
	return out
}

// SupportedList returns the supported extensions joined with ", ".
func SupportedList() string {
	names := make([]string, len(supported))
	for i, e := range supported {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// Lookup returns the codec mapping for ext.
func Lookup(ext Extension) (Mapping, error) {
	m := Mapping{Extension: ext}
	switch ext {
	case OGG:
		m.AudioCodec = "libvorbis"
	case WAV:
		m.AudioCodec = "pcm_s16le"
	case FLAC:
		m.AudioCodec = "flac"
	case AAC, M4A:
		m.AudioCodec = "aac"
	case OPUS:
		m.AudioCodec = "libopus"
	case MP3:
		m.AudioCodec = "libmp3lame"
	case MP4, MKV, MOV, FLV, M4V:
		m.AudioCodec, m.VideoCodec = "aac", "libx264"
	case WEBM:
		m.AudioCodec, m.VideoCodec = "libopus", "libvpx-vp9"
	case AVI:
		m.AudioCodec, m.VideoCodec = "libmp3lame", "mpeg4"
	case WMV:
		m.AudioCodec, m.VideoCodec = "wmav2", "wmv2"
	case MPEG, MPG:
		m.AudioCodec, m.VideoCodec = "mp2", "mpeg2video"
	default:
		return Mapping{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(ext))
	}
	return m, nil
}

// Parse converts s into a supported Extension. s must already be in the
// canonical lowercase form; no case folding happens here.
func Parse(s string) (Extension, error) {
	ext := Extension(s)
	if _, err := Lookup(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// FromPath returns the lower-cased extension of path as a supported
// Extension.
func FromPath(path string) (Extension, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filepath.Base(path))
	}
	return Parse(ext)
}

// Encoders returns the distinct encoder names used by the table, audio
// first, in table order.
func Encoders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ext := range supported {
		m, _ := Lookup(ext)
		for _, c := range []string{m.AudioCodec, m.VideoCodec} {
			if c != "" && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
