// Package xmp locates XMP sidecars so they can follow their media file.
package xmp

import (
	"path/filepath"
	"strings"
)

// Lister lists the regular files of a directory by name.
type Lister interface {
	List(dir string) ([]string, error)
}

// SidecarPath returns the "IMG_0001.xmp" style sidecar name for a media file.
func SidecarPath(mediaPath string) string {
	path := mediaPath
	if strings.EqualFold(filepath.Ext(path), ".xmp") {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return path + ".xmp"
	}
	return strings.TrimSuffix(path, ext) + ".xmp"
}

// IsSidecar reports whether path is an XMP sidecar.
func IsSidecar(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xmp")
}

// Move is a sidecar rename implied by a media rename.
type Move struct {
	From string
	To   string
}

// Follow lists the sidecars of mediaPath that should be renamed when the
// media file becomes newMediaPath. Both "IMG_0001.xmp" and
// "IMG_0001.JPG.xmp" layouts are recognized, in either case. A stem-only
// sidecar is left alone when another media file shares the stem (a RAW+JPEG
// pair), since it belongs to both. Directory contents come from l, so a dry
// run sees its own planned renames.
func Follow(l Lister, mediaPath, newMediaPath string) []Move {
	dir := filepath.Dir(mediaPath)
	names, err := l.List(dir)
	if err != nil {
		return nil
	}

	base := filepath.Base(mediaPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	newBase := filepath.Base(newMediaPath)
	newStem := strings.TrimSuffix(newBase, filepath.Ext(newBase))
	newDir := filepath.Dir(newMediaPath)

	var (
		moves  []Move
		shared bool
		stemSC string
	)
	for _, name := range names {
		switch {
		case name == base:
		case IsSidecar(name) && strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), base):
			moves = append(moves, Move{
				From: filepath.Join(dir, name),
				To:   filepath.Join(newDir, newBase+filepath.Ext(name)),
			})
		case IsSidecar(name) && strings.TrimSuffix(name, filepath.Ext(name)) == stem:
			stemSC = name
		case !IsSidecar(name) && strings.TrimSuffix(name, filepath.Ext(name)) == stem:
			shared = true
		}
	}
	if stemSC != "" && !shared {
		moves = append(moves, Move{
			From: filepath.Join(dir, stemSC),
			To:   filepath.Join(newDir, newStem+filepath.Ext(stemSC)),
		})
	}
	return moves
}
