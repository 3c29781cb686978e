package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nir0k/ImageDater/internal/mover"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
)

func main() {
	var opts mover.Options

	pflag.StringVarP(&opts.Directory, "directory", "d", "", "Directory with renamed photos and videos")
	pflag.StringVar(&opts.ArchiveRoot, "archive-root", "", "Root of the Pictures_YYYY/MM_YYYY archive")
	pflag.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be moved without touching any file")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", true, "Scan subdirectories")
	pflag.StringVar(&opts.Extensions, "extensions", "", "Comma-separated list of file extensions to move")
	pflag.BoolVar(&opts.FollowSidecars, "sidecars", true, "Move XMP sidecars together with their media file")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for both file and console outputs")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	showProgress := pflag.Bool("progress", false, "Show a progress bar on stderr")

	pflag.Parse()
	opts.PrintSummary = true

	var bar *progressbar.ProgressBar
	if *showProgress {
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Move files"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
				)
			}
			_ = bar.Set(done)
		}
	}

	ctx := context.Background()
	_, err := mover.Run(ctx, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "imagedater-mover failed: %v\n", err)
		os.Exit(1)
	}
}
