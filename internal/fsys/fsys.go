// Package fsys is the filesystem boundary used by the renamer and the mover.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"syscall"
)

// ErrDestinationExists is returned by Rename when the target appeared after
// the destination was chosen.
var ErrDestinationExists = errors.New("destination already exists")

// FS is the set of filesystem operations the planner needs.
type FS interface {
	Exists(path string) bool
	// Rename moves src to dst and fails with ErrDestinationExists rather
	// than replacing an existing dst.
	Rename(src, dst string) error
	MkdirAll(dir string) error
	IsDir(path string) bool
	// List returns the names of the regular files in dir, sorted.
	List(dir string) ([]string, error)
}

// OS is the real filesystem.
type OS struct{}

// Exists reports whether anything (file, dir, dangling link) is at path.
func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MkdirAll creates dir and its parents.
func (OS) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// List returns the names of the regular files in dir, sorted.
func (OS) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Rename moves src to dst without ever replacing dst. A hard link claims dst
// atomically; filesystems without hard links fall back to a checked rename,
// and moves across devices fall back to copy and remove.
func (OS) Rename(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("rename %s: %w", src, err)
	}

	err := os.Link(src, dst)
	if err == nil {
		if err := os.Remove(src); err != nil {
			_ = os.Remove(dst)
			return fmt.Errorf("rename %s: remove source: %w", src, err)
		}
		return nil
	}
	return renameAfterLink(src, dst, err)
}

// renameAfterLink finishes a rename whose hard link attempt failed with
// linkErr.
func renameAfterLink(src, dst string, linkErr error) error {
	switch {
	case errors.Is(linkErr, fs.ErrExist):
		return fmt.Errorf("rename %s -> %s: %w", src, dst, ErrDestinationExists)
	case errors.Is(linkErr, syscall.EXDEV):
		return moveAcrossDevices(src, dst)
	}

	// No hard link support (FAT, some network shares).
	if _, statErr := os.Lstat(dst); statErr == nil {
		return fmt.Errorf("rename %s -> %s: %w", src, dst, ErrDestinationExists)
	}
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, syscall.EXDEV) {
			return moveAcrossDevices(src, dst)
		}
		return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
	}
	return nil
}

func moveAcrossDevices(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("move %s -> %s: %w", src, dst, ErrDestinationExists)
		}
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close %s: %w", dst, err)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())

	in.Close()
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove %s after copy: %w", src, err)
	}
	return nil
}
