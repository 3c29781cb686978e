// Package naming builds date-based file names that never collide with
// existing files.
//
// Names look like 20240401-053642-000.jpg: the wall-clock date and time of
// the capture, a three-digit counter and the original extension.
package naming

import (
	"fmt"
	"path/filepath"
	"time"
)

// DateLayout formats the date part of a name.
const DateLayout = "20060102-150405"

// Exister answers whether a path is taken.
type Exister interface {
	Exists(path string) bool
}

// Destination is where a file should live.
type Destination struct {
	Path string
	// NoOp is set when Path is the source itself, i.e. the file is already
	// named correctly and must not be moved.
	NoOp bool
}

// Stem returns the date part of the name for ts. The offset of ts is not
// part of the name; its local wall-clock fields are used as is.
func Stem(ts time.Time) string {
	return ts.Format(DateLayout)
}

// Compute returns the first free "<stem>-NNN<ext>" name for source in dir,
// counting up from 000. dir defaults to the directory of source. Only
// Exists is called on ex.
func Compute(ex Exister, source string, ts time.Time, dir string) Destination {
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return Search(ex, source, dir, Stem(ts), 0)
}

// Search probes "<stem>-NNN<ext>" in dir starting at counter start. A
// candidate equal to source is accepted at once as a no-op; otherwise the
// first candidate that does not exist wins. The counter is unbounded, so a
// directory with many same-second shots costs one probe per shot.
func Search(ex Exister, source, dir, stem string, start int) Destination {
	source = filepath.Clean(source)
	ext := filepath.Ext(source)
	for n := start; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%03d%s", stem, n, ext))
		if candidate == source {
			return Destination{Path: candidate, NoOp: true}
		}
		if !ex.Exists(candidate) {
			return Destination{Path: candidate}
		}
	}
}
