package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nir0k/ImageDater/internal/fsys"
	"github.com/nir0k/ImageDater/internal/media"
)

// Stage names a pass over the collected files.
type Stage string

const (
	StageParse  Stage = "Parse files"
	StageRename Stage = "Rename files"
)

// Options represents user-provided CLI parameters.
type Options struct {
	Directory      string
	File           string
	Recursive      bool
	DryRun         bool
	Verbose        bool
	Backend        string
	ExifToolPath   string
	Extensions     string
	FollowSidecars bool
	LogLevel       string
	LogFile        string
	PrintSummary   bool

	// Source replaces the backend selected by Backend. The caller keeps
	// ownership and closes it.
	Source media.Source
	// FS defaults to the real filesystem.
	FS fsys.FS
	// Console receives per-file report lines; defaults to stdout.
	Console io.Writer
	// Progress is called after each file of each stage.
	Progress func(stage Stage, done, total int)

	backend media.Backend
	exts    media.Extensions
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.Directory = strings.TrimSpace(o.Directory)
	o.File = strings.TrimSpace(o.File)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)
	o.ExifToolPath = strings.TrimSpace(o.ExifToolPath)

	switch {
	case o.Directory == "" && o.File == "":
		return fmt.Errorf("no action specified: a directory or a file is required")
	case o.Directory != "" && o.File != "":
		return fmt.Errorf("cannot use a directory and a file at the same time")
	case o.File != "" && o.DryRun:
		return fmt.Errorf("dry-run cannot be combined with a single file: inspecting a file never renames it")
	}

	if o.Directory != "" {
		info, err := os.Stat(o.Directory)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("cannot find directory: %q", o.Directory)
		}
		// A silent dry run shows nothing.
		if o.DryRun {
			o.Verbose = true
		}
	}
	if o.File != "" {
		info, err := os.Stat(o.File)
		if err != nil || info.IsDir() {
			return fmt.Errorf("cannot find file: %q", o.File)
		}
	}

	backend, err := media.ParseBackend(o.Backend)
	if err != nil {
		return err
	}
	o.backend = backend

	exts, err := media.ParseExtensions(o.Extensions)
	if err != nil {
		return err
	}
	o.exts = exts

	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	if o.FS == nil {
		o.FS = fsys.OS{}
	}
	if o.Console == nil {
		o.Console = os.Stdout
	}
	return nil
}

func (o *Options) progress(stage Stage, done, total int) {
	if o.Progress != nil {
		o.Progress(stage, done, total)
	}
}

func (o *Options) openSource() (media.Source, func(), error) {
	if o.Source != nil {
		return o.Source, func() {}, nil
	}
	src, err := media.OpenSource(o.backend, o.ExifToolPath)
	if err != nil {
		return nil, nil, err
	}
	return src, func() { _ = src.Close() }, nil
}

func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "imagedater.log"), nil
}

// DefaultLogPath is the log file used when none is configured.
func DefaultLogPath() (string, error) {
	return defaultLogPath()
}
