package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions is the media allow-list used when none is configured.
var DefaultExtensions = []string{"heic", "mov", "jpeg", "jpg", "mp4", "png", "webp"}

// Extensions is a case-insensitive extension allow-list.
type Extensions map[string]bool

// ParseExtensions accepts "jpg,.HEIC, mov" style lists. An empty list yields
// DefaultExtensions.
func ParseExtensions(raw string) (Extensions, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	if len(parts) == 0 {
		parts = DefaultExtensions
	}
	out := make(Extensions, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(p), "."))
		if p == "" {
			continue
		}
		if strings.ContainsAny(p, `/\.`) {
			return nil, fmt.Errorf("invalid extension %q", p)
		}
		out["."+p] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("extension list is empty")
	}
	return out, nil
}

// Match reports whether path carries an allowed extension.
func (e Extensions) Match(path string) bool {
	return e[strings.ToLower(filepath.Ext(path))]
}

// List returns the extensions sorted, without dots.
func (e Extensions) List() []string {
	out := make([]string, 0, len(e))
	for ext := range e {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(out)
	return out
}

// CollectFiles resolves the input path into a list of regular files.
// It supports direct file paths, directories, glob patterns and several
// inputs separated by ";" or newlines. A path that exists is always taken
// literally. Files appear once, in walk order.
func CollectFiles(input string, recursive bool) ([]string, error) {
	inputs := splitInputs(input)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("input path is empty")
	}

	unique := make(map[string]struct{})
	var results []string

	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, exists := unique[path]; !exists {
			unique[path] = struct{}{}
			results = append(results, path)
		}
	}

	for _, in := range inputs {
		matches, err := expandInput(in)
		if err != nil {
			return nil, err
		}

		for _, candidate := range matches {
			info, err := os.Stat(candidate)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", candidate, err)
			}
			if info.IsDir() {
				if err := walkDir(candidate, recursive, addFile); err != nil {
					return nil, err
				}
				continue
			}
			addFile(candidate)
		}
	}

	return results, nil
}

func splitInputs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	// An existing path is one input even when its name holds a separator.
	if _, err := os.Stat(raw); err == nil {
		return []string{raw}
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandInput(input string) ([]string, error) {
	// Real paths win over glob syntax: "Photos/[2024] Trip" is a folder.
	if _, err := os.Stat(input); err == nil {
		return []string{input}, nil
	}
	if !strings.ContainsAny(input, "*?[") {
		return []string{input}, nil
	}
	matches, err := filepath.Glob(input)
	if err != nil {
		return nil, fmt.Errorf("expand glob: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched pattern %q", input)
	}
	return matches, nil
}

func walkDir(root string, recursive bool, add func(string)) error {
	if recursive {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				add(path)
			}
			return nil
		})
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", root, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			add(filepath.Join(root, entry.Name()))
		}
	}
	return nil
}
