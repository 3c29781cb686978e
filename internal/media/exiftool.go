package media

import (
	"bytes"
	"fmt"
	"os/exec"
	"sync"

	"github.com/barasher/go-exiftool"
)

// ExifToolSource talks to a single exiftool process kept open in
// -stay_open mode for the lifetime of the source.
type ExifToolSource struct {
	mu sync.Mutex
	et *exiftool.Exiftool
}

// NewExifToolSource starts exiftool from the given binary path.
func NewExifToolSource(binary string) (*ExifToolSource, error) {
	et, err := exiftool.NewExiftool(exiftool.SetExiftoolBinaryPath(binary))
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExifToolSource{et: et}, nil
}

func (s *ExifToolSource) Name() string { return string(BackendExifTool) }

// Text returns the tags of path rendered as "Label: value" lines.
func (s *ExifToolSource) Text(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := s.et.ExtractMetadata(path)
	if len(infos) == 0 {
		return "", fmt.Errorf("%w: exiftool returned nothing for %s", ErrMetadataUnavailable, path)
	}
	fi := infos[0]
	if fi.Err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMetadataUnavailable, path, fi.Err)
	}
	return renderFields(fi.Fields), nil
}

func (s *ExifToolSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.et.Close()
}

// ExifToolCLISource runs `exiftool <file>` for every file and returns its
// plain listing untouched.
type ExifToolCLISource struct {
	Binary string
}

func (s *ExifToolCLISource) Name() string { return string(BackendExifToolCLI) }

func (s *ExifToolCLISource) Text(path string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.Binary, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	// exiftool exits non-zero for files it only partly understands but
	// still prints the file system tags; keep whatever it printed.
	if stdout.Len() == 0 {
		if err == nil {
			err = fmt.Errorf("empty output")
		}
		return "", fmt.Errorf("%w: %s: %v %s", ErrMetadataUnavailable, path, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return string(bytes.ToValidUTF8(stdout.Bytes(), nil)), nil
}

func (s *ExifToolCLISource) Close() error { return nil }
