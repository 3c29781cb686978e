package media

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// ErrMetadataUnavailable is returned when a file's metadata cannot be read at
// all (missing tool, unsupported or unreadable file).
var ErrMetadataUnavailable = errors.New("metadata unavailable")

// Source produces the metadata of one file as "Label: value" lines, the way
// `exiftool <file>` prints them. Nothing beyond that line shape is assumed.
type Source interface {
	Name() string
	Text(path string) (string, error)
	Close() error
}

// Backend selects a Source implementation.
type Backend string

const (
	// BackendExifTool keeps one exiftool process open for the whole batch.
	BackendExifTool Backend = "exiftool"
	// BackendExifToolCLI runs exiftool once per file and reads its plain output.
	BackendExifToolCLI Backend = "exiftool-cli"
	// BackendEmbedded decodes EXIF in-process; no external binary is needed.
	BackendEmbedded Backend = "embedded"
)

// ParseBackend validates a backend name.
func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	switch b {
	case "":
		return BackendExifTool, nil
	case BackendExifTool, BackendExifToolCLI, BackendEmbedded:
		return b, nil
	}
	return "", fmt.Errorf("invalid backend %q (expected exiftool, exiftool-cli or embedded)", raw)
}

// OpenSource starts the requested backend. exiftoolPath overrides the
// exiftool binary for the exiftool backends.
func OpenSource(b Backend, exiftoolPath string) (Source, error) {
	switch b {
	case BackendEmbedded:
		return EmbeddedSource{}, nil
	case BackendExifToolCLI:
		exe, err := lookExifTool(exiftoolPath)
		if err != nil {
			return nil, err
		}
		return &ExifToolCLISource{Binary: exe}, nil
	case BackendExifTool, "":
		exe, err := lookExifTool(exiftoolPath)
		if err != nil {
			return nil, err
		}
		return NewExifToolSource(exe)
	}
	return nil, fmt.Errorf("unknown backend %q", b)
}

func lookExifTool(path string) (string, error) {
	if path == "" {
		path = "exiftool"
	}
	exe, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("exiftool not found in PATH; install it and retry: %w", err)
	}
	return exe, nil
}

// tagLabels maps exiftool tag names to the descriptions exiftool prints in
// its default output. The composite SubSec tags share their base tag's
// description and sort after it, so they win like they do in exiftool's
// own listing.
var tagLabels = map[string]string{
	"DateTimeOriginal":       "Date/Time Original",
	"CreationDate":           "Creation Date",
	"MediaCreateDate":        "Media Create Date",
	"TrackCreateDate":        "Track Create Date",
	"CreateDate":             "Create Date",
	"DateCreated":            "Date Created",
	"ModifyDate":             "Modify Date",
	"FileModifyDate":         "File Modification Date/Time",
	"MediaModifyDate":        "Media Modify Date",
	"TrackModifyDate":        "Track Modify Date",
	"FileAccessDate":         "File Access Date/Time",
	"FileInodeChangeDate":    "File Inode Change Date/Time",
	"GPSDateTime":            "GPS Date/Time",
	"SubSecDateTimeOriginal": "Date/Time Original",
	"SubSecCreateDate":       "Create Date",
	"SubSecModifyDate":       "Modify Date",
}

// lineBreaks are shown as "." the way exiftool prints control characters,
// so a value can never start a line of its own.
var lineBreaks = strings.NewReplacer("\r\n", ".", "\r", ".", "\n", ".")

// renderFields prints a tag map as sorted "Label: value" lines.
func renderFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "SourceFile" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		label := k
		if l, ok := tagLabels[k]; ok {
			label = l
		}
		fmt.Fprintf(&b, "%s: %s\n", label, lineBreaks.Replace(fmt.Sprint(fields[k])))
	}
	return b.String()
}
