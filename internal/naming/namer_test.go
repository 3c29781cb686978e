package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nir0k/ImageDater/internal/fsys"
)

type setExister map[string]bool

func (s setExister) Exists(path string) bool { return s[path] }

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

var shot = time.Date(2024, 4, 1, 5, 36, 42, 0, time.FixedZone("", 2*3600))

func TestStem_UsesWallClock(t *testing.T) {
	if got := Stem(shot); got != "20240401-053642" {
		t.Errorf("Stem = %q", got)
	}
	if got := Stem(shot.UTC()); got != "20240401-033642" {
		t.Errorf("Stem(UTC) = %q", got)
	}
}

func TestCompute_FreeDirectory(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "IMG_0001.JPG")

	d := Compute(fsys.OS{}, src, shot, "")
	want := filepath.Join(dir, "20240401-053642-000.JPG")
	if d.Path != want || d.NoOp {
		t.Errorf("Compute = %+v, want %s", d, want)
	}
}

func TestCompute_AlreadyNamedIsNoOp(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "20240401-053642-000.jpg")

	d := Compute(fsys.OS{}, src, shot, dir)
	if !d.NoOp || d.Path != src {
		t.Errorf("Compute = %+v, want no-op at %s", d, src)
	}
}

func TestCompute_NoOpBehindOccupiedSlot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "20240401-053642-000.jpg")
	src := touch(t, dir, "20240401-053642-001.jpg")

	d := Compute(fsys.OS{}, src, shot, dir)
	if !d.NoOp || d.Path != src {
		t.Errorf("Compute = %+v, want no-op at %s", d, src)
	}
}

func TestCompute_CollisionsGetSuffixes(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.jpg")
	b := touch(t, dir, "b.jpg")

	da := Compute(fsys.OS{}, a, shot, dir)
	if err := (fsys.OS{}).Rename(a, da.Path); err != nil {
		t.Fatal(err)
	}
	db := Compute(fsys.OS{}, b, shot, dir)
	if err := (fsys.OS{}).Rename(b, db.Path); err != nil {
		t.Fatal(err)
	}

	if filepath.Base(da.Path) != "20240401-053642-000.jpg" {
		t.Errorf("first = %s", da.Path)
	}
	if filepath.Base(db.Path) != "20240401-053642-001.jpg" {
		t.Errorf("second = %s", db.Path)
	}
	ca, _ := os.ReadFile(da.Path)
	cb, _ := os.ReadFile(db.Path)
	if string(ca) != "a.jpg" || string(cb) != "b.jpg" {
		t.Errorf("contents swapped or overwritten: %q %q", ca, cb)
	}
}

func TestCompute_ExtensionKeepsCase(t *testing.T) {
	d := Compute(setExister{}, "/photos/clip.MOV", shot, "")
	if d.Path != filepath.Join("/photos", "20240401-053642-000.MOV") {
		t.Errorf("Compute = %s", d.Path)
	}
}

func TestSearch_StartsAtCounter(t *testing.T) {
	taken := setExister{
		filepath.Join("/archive", "20240401-053642-003.jpg"): true,
		filepath.Join("/archive", "20240401-053642-004.jpg"): true,
	}
	d := Search(taken, "/in/20240401-053642-003.jpg", "/archive", "20240401-053642", 3)
	if d.Path != filepath.Join("/archive", "20240401-053642-005.jpg") || d.NoOp {
		t.Errorf("Search = %+v", d)
	}
}

func TestSearch_ManyCollisions(t *testing.T) {
	taken := setExister{}
	for i := 0; i < 1500; i++ {
		taken[filepath.Join("/d", fmt.Sprintf("%s-%03d.jpg", Stem(shot), i))] = true
	}
	d := Search(taken, "/d/x.jpg", "/d", Stem(shot), 0)
	if filepath.Base(d.Path) != "20240401-053642-1500.jpg" {
		t.Errorf("Search = %s", d.Path)
	}
}

func TestParseDated(t *testing.T) {
	d, ok := ParseDated("20240401-053642-012.jpg")
	if !ok {
		t.Fatal("expected match")
	}
	if d.Stem != "20240401-053642" || d.Counter != 12 {
		t.Errorf("ParseDated = %+v", d)
	}
	if d.Time.Year() != 2024 || d.Time.Month() != time.April || d.Time.Second() != 42 {
		t.Errorf("time = %v", d.Time)
	}

	for _, name := range []string{"IMG_0001.jpg", "19990101-000000-000.jpg", "20241301-000000-000.jpg", "20240401-053642.jpg"} {
		if _, ok := ParseDated(name); ok {
			t.Errorf("ParseDated(%q) should not match", name)
		}
	}
}

func TestArchiveDir(t *testing.T) {
	d, _ := ParseDated("20230601-184100-000.heic")
	got := ArchiveDir("/mnt/backup", d)
	want := filepath.Join("/mnt/backup", "Pictures_2023", "06_2023")
	if got != want {
		t.Errorf("ArchiveDir = %q, want %q", got, want)
	}
}
