package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nir0k/ImageDater/internal/resolver"
	"github.com/nir0k/ImageDater/internal/timestamp"
)

// Inspection is the resolved date of a single file. Nothing is renamed.
type Inspection struct {
	Path     string
	Found    bool
	Date     time.Time
	Field    string
	Fields   []resolver.Field
	Rejected []resolver.Rejected
	Text     string
}

// Inspect resolves the date taken of opts.File.
func Inspect(ctx context.Context, opts Options) (*Inspection, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.File == "" {
		return nil, fmt.Errorf("a file is required for inspection")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg, err := OpenLog(opts.LogLevel, opts.LogFile, nil)
	if err != nil {
		return nil, err
	}

	src, closeSrc, err := opts.openSource()
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	text, err := src.Text(opts.File)
	if err != nil {
		lg.Warnf("Failed to read metadata for %s: %v", opts.File, err)
		return nil, err
	}

	res := resolver.FromText(text)
	out := &Inspection{
		Path:     opts.File,
		Found:    res.Found,
		Date:     res.Date,
		Field:    res.Field,
		Rejected: res.Rejected,
		Text:     text,
	}
	for label, ts := range res.Candidates {
		out.Fields = append(out.Fields, resolver.Field{Label: label, Raw: ts.Format(timestamp.Layout)})
	}
	sort.Slice(out.Fields, func(i, j int) bool { return out.Fields[i].Label < out.Fields[j].Label })

	if res.Found {
		lg.Infof("Inspected %s: %s from %q", opts.File, res.Date.Format(time.RFC3339Nano), res.Field)
	} else {
		lg.Infof("Inspected %s: no date field found", opts.File)
	}
	return out, nil
}
