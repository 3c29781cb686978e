package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nir0k/ImageDater/internal/app"
	"github.com/nir0k/ImageDater/internal/fsys"
)

type fixedSource struct{}

func (fixedSource) Name() string { return "fixed" }
func (fixedSource) Close() error { return nil }
func (fixedSource) Text(string) (string, error) {
	return "Date/Time Original : 2024:04:01 05:36:42+02:00\n", nil
}

type readOnlyFS struct{ fsys.OS }

func (readOnlyFS) Rename(src, dst string) error {
	return fmt.Errorf("rename %s -> %s: read-only", src, dst)
}

func TestRename_ClosesBarsOnFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	opts := app.Options{
		Directory: dir,
		Recursive: true,
		LogFile:   filepath.Join(t.TempDir(), "imagedater.log"),
		Source:    fixedSource{},
		FS:        readOnlyFS{},
		Console:   &console,
	}
	bars := newStageBars()
	err := rename(context.Background(), opts, bars)
	if !errors.Is(err, app.ErrRenameFailures) {
		t.Fatalf("err = %v, want ErrRenameFailures", err)
	}
	if bars.stage != app.StageRename {
		t.Errorf("last stage = %q, want %q", bars.stage, app.StageRename)
	}
	if bars.bar != nil {
		t.Error("progress bar left open after a failed run")
	}
}
