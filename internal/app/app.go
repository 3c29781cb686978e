package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/nir0k/ImageDater/internal/fsys"
	"github.com/nir0k/ImageDater/internal/media"
	"github.com/nir0k/ImageDater/internal/naming"
	"github.com/nir0k/ImageDater/internal/resolver"
	"github.com/nir0k/ImageDater/internal/timestamp"
	"github.com/nir0k/ImageDater/internal/xmp"
)

// ErrRenameFailures is returned alongside the summary when at least one
// rename failed at the filesystem level.
var ErrRenameFailures = errors.New("some files could not be renamed")

var (
	goodLine   = color.New(color.FgGreen)
	renameLine = color.New(color.FgCyan)
	errorLine  = color.New(color.FgRed)
)

type datedFile struct {
	Path  string
	Date  time.Time
	Field string
}

// Run renames every supported file under opts.Directory after its date taken.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	return run(ctx, opts, nil)
}

// RunWithLogger allows piping logs into an in-memory buffer instead of a file.
func RunWithLogger(ctx context.Context, opts Options, buf *bytes.Buffer) (*Summary, error) {
	return run(ctx, opts, buf)
}

func run(ctx context.Context, opts Options, buf *bytes.Buffer) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Directory == "" {
		return nil, fmt.Errorf("a directory is required for renaming")
	}

	lg, err := OpenLog(opts.LogLevel, opts.LogFile, buf)
	if err != nil {
		return nil, err
	}

	src, closeSrc, err := opts.openSource()
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	lg.Infof("Starting ImageDater with directory=%s recursive=%t dryRun=%t backend=%s extensions=%v sidecars=%t",
		opts.Directory, opts.Recursive, opts.DryRun, src.Name(), opts.exts.List(), opts.FollowSidecars)

	files, err := media.CollectFiles(opts.Directory, opts.Recursive)
	if err != nil {
		return nil, err
	}

	sum := &Summary{DryRun: opts.DryRun}

	jobs, err := parseFiles(ctx, &opts, lg, src, files, sum)
	if err != nil {
		return nil, err
	}

	fs := opts.FS
	if opts.DryRun {
		fs = fsys.NewOverlay(fs)
	}
	if err := renameFiles(ctx, &opts, lg, fs, jobs, sum); err != nil {
		return nil, err
	}

	if opts.PrintSummary {
		fmt.Fprintln(opts.Console, sum.String())
	}
	lg.Infof("%s", sum.String())

	if sum.Failed > 0 {
		return sum, fmt.Errorf("%w: %d file(s)", ErrRenameFailures, sum.Failed)
	}
	return sum, nil
}

// parseFiles resolves a date for every supported file. Files whose metadata
// cannot be read or carries no usable date are reported and left out.
func parseFiles(ctx context.Context, opts *Options, lg Log, src media.Source, files []string, sum *Summary) ([]datedFile, error) {
	jobs := make([]datedFile, 0, len(files))

	for i, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		opts.progress(StageParse, i+1, len(files))

		if xmp.IsSidecar(path) {
			continue
		}
		if !opts.exts.Match(path) {
			lg.Infof("Skipping unsupported file: %s", path)
			sum.add(FileResult{Path: path, Status: StatusSkipped, Message: "Unsupported extension"})
			continue
		}

		text, err := src.Text(path)
		if err != nil {
			lg.Warnf("Failed to read metadata for %s: %v", path, err)
			reportf(opts.Console, errorLine, "Cannot parse file: %s\n", path)
			sum.add(FileResult{Path: path, Status: StatusMetaError, Message: err.Error()})
			continue
		}

		res := resolver.FromText(text)
		for _, rej := range res.Rejected {
			lg.Infof("Ignoring malformed date in %s: %s", path, rej)
		}
		if !res.Found {
			lg.Warnf("No usable date field in %s (%d candidate(s))", path, len(res.Candidates))
			reportf(opts.Console, errorLine, "Cannot parse file: %s\n", path)
			sum.add(FileResult{Path: path, Status: StatusNoDate, Message: "No date field found"})
			continue
		}

		lg.Infof("Date taken for %s: %s (field %q)", path, res.Date.Format(timestamp.Layout), res.Field)
		jobs = append(jobs, datedFile{Path: path, Date: res.Date, Field: res.Field})
	}
	return jobs, nil
}

// renameFiles computes and applies destinations one file at a time so every
// collision check sees the renames already made in this run.
func renameFiles(ctx context.Context, opts *Options, lg Log, fs fsys.FS, jobs []datedFile, sum *Summary) error {
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dest := naming.Compute(fs, job.Path, job.Date, "")
		if dest.NoOp {
			if opts.Verbose {
				reportf(opts.Console, goodLine, "GOOD: %s\n", job.Path)
			}
			sum.add(FileResult{Path: job.Path, Destination: dest.Path, Status: StatusUnchanged})
			opts.progress(StageRename, i+1, len(jobs))
			continue
		}

		var sidecars []xmp.Move
		if opts.FollowSidecars {
			sidecars = xmp.Follow(fs, job.Path, dest.Path)
		}

		if opts.Verbose {
			reportf(opts.Console, renameLine, "RENAME: %s => %s\n", job.Path, dest.Path)
		}
		if err := fs.Rename(job.Path, dest.Path); err != nil {
			lg.Errorf("Failed to rename %s: %v", job.Path, err)
			reportf(opts.Console, errorLine, "ERROR: %v\n", err)
			sum.add(FileResult{Path: job.Path, Destination: dest.Path, Status: StatusFailed, Message: err.Error()})
			opts.progress(StageRename, i+1, len(jobs))
			continue
		}
		lg.Infof("Renamed %s -> %s (%s)", job.Path, dest.Path, job.Field)
		sum.add(FileResult{Path: job.Path, Destination: dest.Path, Status: StatusRenamed, Message: job.Field})

		for _, mv := range sidecars {
			moveSidecar(opts, lg, fs, mv)
		}
		opts.progress(StageRename, i+1, len(jobs))
	}
	return nil
}

func moveSidecar(opts *Options, lg Log, fs fsys.FS, mv xmp.Move) {
	if fs.Exists(mv.To) {
		lg.Warnf("Sidecar %s not moved: %s already exists", mv.From, mv.To)
		return
	}
	if opts.Verbose {
		reportf(opts.Console, renameLine, "RENAME: %s => %s\n", mv.From, mv.To)
	}
	if err := fs.Rename(mv.From, mv.To); err != nil {
		lg.Errorf("Failed to move sidecar %s: %v", mv.From, err)
		return
	}
	lg.Infof("Moved sidecar %s -> %s", mv.From, mv.To)
}

func reportf(w io.Writer, c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintf(w, format, args...)
}
