package mover

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nir0k/ImageDater/internal/app"
	"github.com/nir0k/ImageDater/internal/fsys"
	"github.com/nir0k/ImageDater/internal/media"
)

// Options represents user-provided parameters for archiving dated files.
type Options struct {
	Directory      string
	ArchiveRoot    string
	Recursive      bool
	DryRun         bool
	Extensions     string
	FollowSidecars bool
	LogLevel       string
	LogFile        string
	PrintSummary   bool

	FS       fsys.FS
	Console  io.Writer
	Progress func(done, total int)

	exts media.Extensions
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.Directory = strings.TrimSpace(o.Directory)
	o.ArchiveRoot = strings.TrimSpace(o.ArchiveRoot)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.Directory == "" {
		return fmt.Errorf("directory is required")
	}
	if info, err := os.Stat(o.Directory); err != nil || !info.IsDir() {
		return fmt.Errorf("cannot find directory: %q", o.Directory)
	}
	if o.ArchiveRoot == "" {
		return fmt.Errorf("archive root is required")
	}
	if info, err := os.Stat(o.ArchiveRoot); err == nil && !info.IsDir() {
		return fmt.Errorf("archive root %q is not a directory", o.ArchiveRoot)
	}
	// Source and archive paths are compared, so both must be absolute.
	if abs, err := filepath.Abs(o.ArchiveRoot); err == nil {
		o.ArchiveRoot = abs
	}
	if abs, err := filepath.Abs(o.Directory); err == nil {
		o.Directory = abs
	}

	exts, err := media.ParseExtensions(o.Extensions)
	if err != nil {
		return err
	}
	o.exts = exts

	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := app.DefaultLogPath()
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
