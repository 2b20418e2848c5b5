package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/media-converter/internal/check"
	"github.com/backmassage/media-converter/internal/ffmpeg"
	"github.com/backmassage/media-converter/internal/logging"
	"github.com/backmassage/media-converter/internal/pipeline"
)

type recordingConverter struct {
	reqs []ffmpeg.Request
	fail bool
}

func (r *recordingConverter) Convert(_ context.Context, req ffmpeg.Request) error {
	r.reqs = append(r.reqs, req)
	if r.fail {
		return &ffmpeg.ConversionError{InputPath: req.InputPath, ExitCode: 1, Err: errors.New("exit status 1")}
	}
	return os.WriteFile(req.OutputPath, []byte("out"), 0o644)
}

type harness struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	conv   *recordingConverter
}

func newHarness(stdin string) *harness {
	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, conv: &recordingConverter{}}
	h.app = New(strings.NewReader(stdin), h.out, h.errOut, "1.2.3", "abc123")
	h.app.lookEngine = func(engine string) (string, error) { return "/usr/bin/" + engine, nil }
	h.app.newConverter = func(string, *logging.Logger) pipeline.Converter { return h.conv }
	return h
}

func (h *harness) run(args ...string) int {
	return h.app.Execute(context.Background(), append([]string{"--no-color"}, args...))
}

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"-h"}, {"--help"}, {"bulk", "-h"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			h := newHarness("")
			assert.Equal(t, 0, h.run(args...))
			assert.Contains(t, h.out.String(), "Usage:")
			assert.Empty(t, h.conv.reqs)
		})
	}
}

func TestExecute_Version(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"-v"}, {"--version"}, {"-v", "bulk"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			h := newHarness("")
			assert.Equal(t, 0, h.run(args...))
			assert.Equal(t, "media-converter v1.2.3\n", h.out.String())
			assert.Empty(t, h.conv.reqs)
		})
	}
}

func TestExecute_NoCommand(t *testing.T) {
	h := newHarness("")
	assert.Equal(t, 1, h.run())
	assert.Contains(t, h.errOut.String(), "Usage:")
	assert.Contains(t, h.errOut.String(), "no command given")
}

func TestExecute_UnknownCommand(t *testing.T) {
	h := newHarness("")
	assert.Equal(t, 1, h.run("convert"))
	assert.Contains(t, h.errOut.String(), "Usage:")
	assert.Contains(t, h.errOut.String(), `unknown command "convert"`)
	assert.Empty(t, h.out.String())
}

func TestExecute_UnknownFlag(t *testing.T) {
	h := newHarness("")
	assert.Equal(t, 1, h.run("--bogus", "bulk"))
	assert.Contains(t, h.errOut.String(), "invalid flag")
	assert.Contains(t, h.errOut.String(), "bogus")
}

func TestExecute_InvalidBitrate(t *testing.T) {
	h := newHarness("mp3\n")
	assert.Equal(t, 1, h.run("-b", "loud", "--dir", t.TempDir(), "bulk"))
	assert.NotContains(t, h.out.String(), "Convert to:")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_SingleNeedsInput(t *testing.T) {
	h := newHarness("")
	assert.Equal(t, 1, h.run("single"))
}

func TestExecute_MissingEngine(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	h := newHarness("mp3\n")
	h.app.lookEngine = func(engine string) (string, error) {
		return "", fmt.Errorf("%w: %s", check.ErrEngineNotFound, engine)
	}

	assert.Equal(t, 1, h.run("--dir", dir, "bulk"))
	assert.Contains(t, h.errOut.String(), "ffmpeg not found")
	assert.NotContains(t, h.out.String(), "Convert to:")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_InvalidTarget(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	h := newHarness("xyz\n")

	assert.Equal(t, 1, h.run("--dir", dir, "bulk"))
	assert.Contains(t, h.out.String(), "Convert to:")
	assert.Contains(t, h.errOut.String(), "unsupported")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_SingleMissingFileFailsBeforePrompt(t *testing.T) {
	h := newHarness("mp3\n")
	assert.Equal(t, 1, h.run("single", filepath.Join(t.TempDir(), "gone.wav")))
	assert.NotContains(t, h.out.String(), "Convert to:")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_BulkEndToEnd(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	touchFile(t, filepath.Join(dir, "b.flac"))
	touchFile(t, filepath.Join(dir, "c.mp3"))
	h := newHarness("MP3\n")

	assert.Equal(t, 0, h.run("-b", "192", "--dir", dir, "bulk"))
	require.Len(t, h.conv.reqs, 2)
	for _, r := range h.conv.reqs {
		assert.Equal(t, "192k", r.Bitrate)
		assert.Equal(t, ".mp3", filepath.Ext(r.OutputPath))
	}
	assert.FileExists(t, filepath.Join(dir, "a.mp3"))
	assert.FileExists(t, filepath.Join(dir, "b.mp3"))
	assert.Contains(t, h.out.String(), "Bulk conversion complete")
	assert.Contains(t, h.out.String(), "=== media-converter v1.2.3 (abc123) ===")
}

func TestExecute_BulkPromptsBeforeOverwrite(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ogg"), []byte("keep"), 0o644))
	h := newHarness("ogg\nn\n")

	assert.Equal(t, 0, h.run("--dir", dir, "bulk"))
	assert.Contains(t, h.out.String(), "already exists. Overwrite? [y/N]:")
	assert.Empty(t, h.conv.reqs)
	b, err := os.ReadFile(filepath.Join(dir, "a.ogg"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
}

func TestExecute_FlagsAfterCommand(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ogg"), []byte("keep"), 0o644))
	h := newHarness("ogg\n")

	assert.Equal(t, 0, h.run("bulk", "--dir", dir, "-s"))
	assert.NotContains(t, h.out.String(), "Overwrite?")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_SingleWipe(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "clip.mov")
	touchFile(t, in)
	h := newHarness("mp4\n")

	assert.Equal(t, 0, h.run("-w", "single", in))
	require.Len(t, h.conv.reqs, 1)
	assert.Equal(t, filepath.Join(dir, "clip.mp4"), h.conv.reqs[0].OutputPath)
	assert.NoFileExists(t, in)
}

func TestExecute_ConversionFailureExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.wav"))
	h := newHarness("mp3\n")
	h.conv.fail = true

	assert.Equal(t, 1, h.run("-w", "--dir", dir, "bulk"))
	assert.FileExists(t, filepath.Join(dir, "a.wav"))
	assert.Contains(t, h.errOut.String(), "conversion failed")
}

func TestExecute_EmptyDirectory(t *testing.T) {
	h := newHarness("mp3\n")
	assert.Equal(t, 0, h.run("--dir", t.TempDir(), "bulk"))
	assert.Contains(t, h.out.String(), "No files to convert")
	assert.Empty(t, h.conv.reqs)
}

func TestExecute_CheckWithMissingEngine(t *testing.T) {
	h := newHarness("")
	assert.Equal(t, 1, h.run("--engine", filepath.Join(t.TempDir(), "no-ffmpeg"), "check"))
	assert.Contains(t, h.errOut.String(), "ffmpeg not found")
}

func touchFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}
