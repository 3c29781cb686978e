package xmp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nir0k/ImageDater/internal/fsys"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSidecarPath(t *testing.T) {
	tests := map[string]string{
		"/a/IMG_0001.CR3":  "/a/IMG_0001.xmp",
		"/a/IMG_0001.xmp":  "/a/IMG_0001.xmp",
		"/a/IMG_0001":      "/a/IMG_0001.xmp",
		"/a/clip.mov.XMP":  "/a/clip.xmp",
		"/a/photo.tar.jpg": "/a/photo.tar.xmp",
	}
	for in, want := range tests {
		if got := SidecarPath(in); got != want {
			t.Errorf("SidecarPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFollow_StemSidecar(t *testing.T) {
	dir := t.TempDir()
	media := touch(t, dir, "IMG_0001.HEIC")
	touch(t, dir, "IMG_0001.XMP")

	moves := Follow(fsys.OS{}, media, filepath.Join(dir, "20240401-053642-000.HEIC"))
	if len(moves) != 1 {
		t.Fatalf("moves = %v", moves)
	}
	if moves[0].To != filepath.Join(dir, "20240401-053642-000.XMP") {
		t.Errorf("to = %s", moves[0].To)
	}
}

func TestFollow_FullNameSidecar(t *testing.T) {
	dir := t.TempDir()
	media := touch(t, dir, "IMG_0001.jpg")
	touch(t, dir, "IMG_0001.jpg.xmp")

	moves := Follow(fsys.OS{}, media, filepath.Join(dir, "20240401-053642-000.jpg"))
	if len(moves) != 1 || moves[0].To != filepath.Join(dir, "20240401-053642-000.jpg.xmp") {
		t.Errorf("moves = %v", moves)
	}
}

func TestFollow_SharedStemStays(t *testing.T) {
	dir := t.TempDir()
	media := touch(t, dir, "IMG_0001.jpg")
	touch(t, dir, "IMG_0001.CR3")
	touch(t, dir, "IMG_0001.xmp")

	if moves := Follow(fsys.OS{}, media, filepath.Join(dir, "20240401-053642-000.jpg")); len(moves) != 0 {
		t.Errorf("shared sidecar should stay, got %v", moves)
	}
}

func TestFollow_NoSidecar(t *testing.T) {
	dir := t.TempDir()
	media := touch(t, dir, "IMG_0001.jpg")
	touch(t, dir, "IMG_0002.xmp")

	if moves := Follow(fsys.OS{}, media, filepath.Join(dir, "x.jpg")); len(moves) != 0 {
		t.Errorf("moves = %v", moves)
	}
}

func TestFollow_SeesPlannedRenames(t *testing.T) {
	dir := t.TempDir()
	heic := touch(t, dir, "IMG_0001.HEIC")
	jpg := touch(t, dir, "IMG_0001.JPG")
	touch(t, dir, "IMG_0001.xmp")

	plan := fsys.NewOverlay(fsys.OS{})
	if moves := Follow(plan, heic, filepath.Join(dir, "20240401-053642-000.HEIC")); len(moves) != 0 {
		t.Fatalf("sidecar shared with the JPG should stay, got %v", moves)
	}
	if err := plan.Rename(heic, filepath.Join(dir, "20240401-053642-000.HEIC")); err != nil {
		t.Fatal(err)
	}

	moves := Follow(plan, jpg, filepath.Join(dir, "20240401-053642-001.JPG"))
	if len(moves) != 1 || moves[0].To != filepath.Join(dir, "20240401-053642-001.xmp") {
		t.Errorf("moves = %v", moves)
	}
}
