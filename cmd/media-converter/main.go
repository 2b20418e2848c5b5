// Command media-converter converts audio and video files between common
// formats by driving ffmpeg, one file or a whole directory at a time.
package main

import (
	"context"
	"os"

	"github.com/backmassage/media-converter/internal/cli"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(cli.Main(context.Background(), os.Args[1:], version, commit))
}
