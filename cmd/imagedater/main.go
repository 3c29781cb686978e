package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nir0k/ImageDater/internal/app"
	"github.com/nir0k/ImageDater/internal/timestamp"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
)

func main() {
	var opts app.Options

	pflag.StringVarP(&opts.Directory, "directory", "d", "", "Directory with photos and videos to rename")
	pflag.StringVarP(&opts.File, "file", "f", "", "Print the date taken of a single file without renaming it")
	pflag.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print a line for every file")
	pflag.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be renamed without touching any file")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", true, "Scan subdirectories")
	pflag.StringVar(&opts.Backend, "backend", "exiftool", "Metadata backend: exiftool, exiftool-cli, or embedded")
	pflag.StringVar(&opts.ExifToolPath, "exiftool", "", "Path to the exiftool binary (looked up in PATH by default)")
	pflag.StringVar(&opts.Extensions, "extensions", "", "Comma-separated list of file extensions to rename")
	pflag.BoolVar(&opts.FollowSidecars, "sidecars", true, "Rename XMP sidecars together with their media file")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for both file and console outputs")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")

	pflag.Parse()

	ctx := context.Background()

	if opts.File != "" && opts.Directory == "" && !opts.DryRun {
		inspect(ctx, opts)
		return
	}

	if opts.DryRun && opts.Directory != "" && !opts.Verbose {
		fmt.Println("Dry run: forcing verbose mode")
	}
	opts.PrintSummary = true
	var bars *stageBars
	if !opts.Verbose && !opts.DryRun {
		bars = newStageBars()
	}
	if err := rename(ctx, opts, bars); err != nil {
		fmt.Fprintf(os.Stderr, "imagedater failed: %v\n", err)
		os.Exit(1)
	}
}

// rename runs the batch. Progress bars, if any, are closed before it
// returns, since a failing run ends in os.Exit.
func rename(ctx context.Context, opts app.Options, bars *stageBars) error {
	if bars != nil {
		opts.Progress = bars.update
		defer bars.finish()
	}
	_, err := app.Run(ctx, opts)
	return err
}

func inspect(ctx context.Context, opts app.Options) {
	res, err := app.Inspect(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imagedater failed: %v\n", err)
		os.Exit(1)
	}
	if !res.Found {
		fmt.Printf("Cannot parse file: %s\n", res.Path)
		os.Exit(1)
	}
	fmt.Printf("Date taken: %s\n", res.Date.Format(timestamp.Layout))
	if !opts.Verbose {
		return
	}
	fmt.Printf("Field: %s\n", res.Field)
	for _, f := range res.Fields {
		fmt.Printf("  %-28s %s\n", f.Label, f.Raw)
	}
	for _, r := range res.Rejected {
		fmt.Printf("  ignored %s\n", r)
	}
}

// stageBars shows one progress bar per stage on stderr.
type stageBars struct {
	stage app.Stage
	bar   *progressbar.ProgressBar
}

func newStageBars() *stageBars {
	return &stageBars{}
}

func (s *stageBars) update(stage app.Stage, done, total int) {
	if s.bar == nil || stage != s.stage {
		s.finish()
		s.stage = stage
		s.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(string(stage)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = s.bar.Set(done)
}

func (s *stageBars) finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}
