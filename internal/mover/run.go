// Package mover files already dated media into a year/month archive:
//
//	<root>/Pictures_2024/04_2024/20240401-053642-000.jpg
package mover

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/nir0k/ImageDater/internal/app"
	"github.com/nir0k/ImageDater/internal/fsys"
	"github.com/nir0k/ImageDater/internal/media"
	"github.com/nir0k/ImageDater/internal/naming"
	"github.com/nir0k/ImageDater/internal/xmp"
)

var (
	goodLine   = color.New(color.FgGreen)
	createLine = color.New(color.FgYellow)
	moveLine   = color.New(color.FgCyan)
	errorLine  = color.New(color.FgRed)
)

type moveJob struct {
	Path  string
	Dated naming.Dated
}

// Run moves every dated file under opts.Directory into the archive.
func Run(ctx context.Context, opts Options) (*app.Summary, error) {
	return run(ctx, opts, nil)
}

// RunWithLogger allows piping logs into an in-memory buffer instead of a file.
func RunWithLogger(ctx context.Context, opts Options, buf *bytes.Buffer) (*app.Summary, error) {
	return run(ctx, opts, buf)
}

func run(ctx context.Context, opts Options, buf *bytes.Buffer) (*app.Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lg, err := app.OpenLog(opts.LogLevel, opts.LogFile, buf)
	if err != nil {
		return nil, err
	}

	lg.Infof("Starting archive move with directory=%s root=%s dryRun=%t extensions=%v",
		opts.Directory, opts.ArchiveRoot, opts.DryRun, opts.exts.List())

	files, err := media.CollectFiles(opts.Directory, opts.Recursive)
	if err != nil {
		return nil, err
	}

	var (
		jobs    []moveJob
		skipped int
	)
	for _, path := range files {
		if xmp.IsSidecar(path) || !opts.exts.Match(path) {
			continue
		}
		d, ok := naming.ParseDated(filepath.Base(path))
		if !ok {
			skipped++
			continue
		}
		jobs = append(jobs, moveJob{Path: path, Dated: d})
	}
	lg.Infof("Found %d dated file(s), %d media file(s) without a dated name", len(jobs), skipped)

	fs := opts.FS
	if opts.DryRun {
		fs = fsys.NewOverlay(fs)
	}

	res := make([]app.FileResult, 0, len(jobs))
	var renamed, unchanged, failed int

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(jobs))
		}

		r := moveOne(&opts, lg, fs, job)
		switch r.Status {
		case app.StatusRenamed:
			renamed++
		case app.StatusUnchanged:
			unchanged++
		case app.StatusFailed:
			failed++
		}
		res = append(res, r)
	}

	sum := &app.Summary{
		DryRun:    opts.DryRun,
		Renamed:   renamed,
		Unchanged: unchanged,
		Skipped:   skipped,
		Failed:    failed,
		Files:     res,
	}
	if opts.PrintSummary {
		fmt.Fprintln(opts.Console, sum.String())
	}
	lg.Infof("%s", sum.String())

	if failed > 0 {
		return sum, fmt.Errorf("%w: %d file(s)", app.ErrRenameFailures, failed)
	}
	return sum, nil
}

func moveOne(opts *Options, lg app.Log, fs fsys.FS, job moveJob) app.FileResult {
	dir := naming.ArchiveDir(opts.ArchiveRoot, job.Dated)
	dst := filepath.Join(dir, filepath.Base(job.Path))

	if dst == filepath.Clean(job.Path) {
		_, _ = goodLine.Fprintf(opts.Console, "GOOD: %s\n", job.Path)
		return app.FileResult{Path: job.Path, Destination: dst, Status: app.StatusUnchanged}
	}

	// Someone else holds the ideal name; count up from this file's own counter.
	if fs.Exists(dst) {
		d := naming.Search(fs, job.Path, dir, job.Dated.Stem, job.Dated.Counter)
		if d.NoOp {
			_, _ = goodLine.Fprintf(opts.Console, "GOOD: %s\n", job.Path)
			return app.FileResult{Path: job.Path, Destination: d.Path, Status: app.StatusUnchanged}
		}
		dst = d.Path
	}

	if !fs.IsDir(dir) {
		_, _ = createLine.Fprintf(opts.Console, "CREATE: %s\n", dir)
		if err := fs.MkdirAll(dir); err != nil {
			lg.Errorf("Failed to create %s: %v", dir, err)
			return app.FileResult{Path: job.Path, Destination: dst, Status: app.StatusFailed, Message: err.Error()}
		}
	}

	var sidecars []xmp.Move
	if opts.FollowSidecars {
		sidecars = xmp.Follow(fs, job.Path, dst)
	}

	_, _ = moveLine.Fprintf(opts.Console, "MOVE: %s => %s\n", job.Path, dst)
	if err := fs.Rename(job.Path, dst); err != nil {
		lg.Errorf("Failed to move %s: %v", job.Path, err)
		_, _ = errorLine.Fprintf(opts.Console, "ERROR: %v\n", err)
		return app.FileResult{Path: job.Path, Destination: dst, Status: app.StatusFailed, Message: err.Error()}
	}
	lg.Infof("Moved %s -> %s", job.Path, dst)

	for _, mv := range sidecars {
		if fs.Exists(mv.To) {
			lg.Warnf("Sidecar %s not moved: %s already exists", mv.From, mv.To)
			continue
		}
		if err := fs.Rename(mv.From, mv.To); err != nil {
			lg.Errorf("Failed to move sidecar %s: %v", mv.From, err)
			continue
		}
		lg.Infof("Moved sidecar %s -> %s", mv.From, mv.To)
	}

	return app.FileResult{Path: job.Path, Destination: dst, Status: app.StatusRenamed}
}
