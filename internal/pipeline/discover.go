package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/media-converter/internal/config"
	"github.com/backmassage/media-converter/internal/formats"
)

// ErrFileNotFound is returned when the single-mode input does not exist.
var ErrFileNotFound = errors.New("file not found")

// Enumerate returns the candidate inputs for a run: the one named file in
// single mode, or Discover over the working directory in bulk mode.
func Enumerate(opts config.Options, target formats.Extension) ([]string, error) {
	if opts.Mode == config.ModeSingle {
		path, err := ResolveSingle(opts.InputPath)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	return Discover(opts.WorkDir, target)
}

// ResolveSingle checks that path names an existing file.
func ResolveSingle(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}
	return path, nil
}

// Discover lists regular files directly inside dir whose names end in
// ".<ext>" for every supported extension except target. Matching is
// case-sensitive on the literal extension. Results are grouped by
// extension in table order; within a group, directory listing order.
func Discover(dir string, target formats.Extension) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, ext := range formats.Supported() {
		if ext == target {
			continue
		}
		suffix := "." + string(ext)
		for _, e := range entries {
			name := e.Name()
			if !strings.HasSuffix(name, suffix) || len(name) == len(suffix) {
				continue
			}
			path := filepath.Join(dir, name)
			if !isRegular(e, path) {
				continue
			}
			files = append(files, path)
		}
	}
	return files, nil
}

// isRegular reports whether e is a regular file. Symlinks are followed so a
// link to a regular file counts.
func isRegular(e os.DirEntry, path string) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// OutputPath returns input with its extension replaced by target, in the
// same directory.
func OutputPath(input string, target formats.Extension) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + string(target)
}
