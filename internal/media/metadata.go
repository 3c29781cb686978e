package media

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"

	"github.com/nir0k/ImageDater/internal/timestamp"
)

// EmbeddedSource reads EXIF dates in-process. It reports the same labels
// exiftool uses for those tags, plus the file modification time, which
// exiftool reports for every file it can open.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return string(BackendEmbedded) }

func (EmbeddedSource) Close() error { return nil }

func (EmbeddedSource) Text(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrMetadataUnavailable, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", ErrMetadataUnavailable, path, err)
	}

	var b strings.Builder
	line := func(label string, ts time.Time) {
		if ts.IsZero() {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, ts.Format(timestamp.RawLayout))
	}

	line("File Modification Date/Time", info.ModTime())

	// Containers without EXIF (video, PNG without eXIf) keep only the
	// file system date, same as exiftool would.
	if exif, err := decodeExifSafe(file, path); err == nil {
		line("Modify Date", exif.ModifyDate())
		line("Create Date", exif.CreateDate())
		line("Date/Time Original", exif.DateTimeOriginal())
		if mk := strings.TrimSpace(exif.Make); mk != "" {
			fmt.Fprintf(&b, "Make: %s\n", mk)
		}
		if model := strings.TrimSpace(exif.Model); model != "" {
			fmt.Fprintf(&b, "Camera Model Name: %s\n", model)
		}
	}

	return b.String(), nil
}

// decodeExifSafe protects against panics from the decoder on malformed files.
func decodeExifSafe(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	ex, err = imagemeta.Decode(r)
	return ex, err
}
