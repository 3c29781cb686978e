package fsys

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Overlay records renames instead of performing them, so a dry run makes the
// same collision decisions a real run would. Reads fall through to the base
// filesystem unless a recorded move has claimed or vacated the path.
type Overlay struct {
	base FS

	mu      sync.Mutex
	claimed map[string]bool
	vacated map[string]bool
	dirs    map[string]bool
	moves   [][2]string
}

// NewOverlay wraps base.
func NewOverlay(base FS) *Overlay {
	return &Overlay{
		base:    base,
		claimed: make(map[string]bool),
		vacated: make(map[string]bool),
		dirs:    make(map[string]bool),
	}
}

func (o *Overlay) Exists(path string) bool {
	path = filepath.Clean(path)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.claimed[path] || o.dirs[path] {
		return true
	}
	if o.vacated[path] {
		return false
	}
	return o.base.Exists(path)
}

func (o *Overlay) IsDir(path string) bool {
	path = filepath.Clean(path)
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dirs[path] || o.base.IsDir(path)
}

func (o *Overlay) MkdirAll(dir string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		o.dirs[d] = true
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	return nil
}

func (o *Overlay) Rename(src, dst string) error {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if o.Exists(dst) {
		return fmt.Errorf("rename %s -> %s: %w", src, dst, ErrDestinationExists)
	}
	if !o.Exists(src) {
		return fmt.Errorf("rename %s: source does not exist", src)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.claimed, src)
	o.vacated[src] = true
	delete(o.vacated, dst)
	o.claimed[dst] = true
	o.moves = append(o.moves, [2]string{src, dst})
	return nil
}

// List merges the recorded moves into the base listing of dir.
func (o *Overlay) List(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	names, baseErr := o.base.List(dir)

	o.mu.Lock()
	defer o.mu.Unlock()
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if o.vacated[filepath.Join(dir, n)] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	for p := range o.claimed {
		if filepath.Dir(p) == dir && !seen[filepath.Base(p)] {
			out = append(out, filepath.Base(p))
		}
	}
	// A directory that exists only in the overlay has no base listing.
	if baseErr != nil && len(out) == 0 && !o.dirs[dir] {
		return nil, baseErr
	}
	sort.Strings(out)
	return out, nil
}

// Moves returns the recorded renames in order.
func (o *Overlay) Moves() [][2]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([][2]string, len(o.moves))
	copy(out, o.moves)
	return out
}
