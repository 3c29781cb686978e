// Package timestamp turns loosely formatted metadata date strings into
// timezone-aware instants with microsecond precision.
package timestamp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrFormat is returned when a string does not have the shape of a metadata timestamp.
var ErrFormat = errors.New("invalid timestamp format")

// ErrInvalidInstant is returned when a string has the right shape but its
// fields do not name a real instant (for example "0000:00:00 00:00:00").
var ErrInvalidInstant = errors.New("timestamp fields out of range")

// Layout is the canonical form every normalized timestamp is reassembled into.
const Layout = "2006-01-02 15:04:05.000000-07:00"

// RawLayout is the colon-separated form metadata tools print. Formatting an
// instant with RawLayout and normalizing it again yields the same instant.
const RawLayout = "2006:01:02 15:04:05.999999-07:00"

var (
	colonDateRe = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})`)
	shapeRe     = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(\.\d+)?([+-]\d{2}:\d{2}|Z)?`)
)

// Canonical rewrites raw into the Layout form without interpreting the
// fields. Missing fractions become ".000000" and a missing or "Z" zone
// becomes "+00:00".
func Canonical(raw string) (string, error) {
	s := colonDateRe.ReplaceAllString(strings.TrimSpace(raw), "$1-$2-$3")

	m := shapeRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrFormat, raw)
	}
	base, frac, zone := m[1], m[2], m[3]

	if frac == "" {
		frac = ".000000"
	} else {
		frac = "." + (frac[1:] + "000000")[:6]
	}

	// Cameras often omit the offset; those are taken as UTC.
	if zone == "" || zone == "Z" {
		zone = "+00:00"
	}

	return base + frac + zone, nil
}

// Normalize parses raw into an instant carrying the source's UTC offset as a
// fixed zone. Both "2024:04:01 05:36:42" and "2024-04-01 05:36:42" date
// separators are accepted, with an optional fraction and "+HH:MM", "-HH:MM"
// or "Z" suffix.
func Normalize(raw string) (time.Time, error) {
	canonical, err := Canonical(raw)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(Layout, canonical)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidInstant, raw, err)
	}
	return ts, nil
}

// Offset formats the UTC offset of ts as "+HH:MM".
func Offset(ts time.Time) string {
	return ts.Format("-07:00")
}

// Micros returns the sub-second part of ts in microseconds.
func Micros(ts time.Time) int {
	return ts.Nanosecond() / int(time.Microsecond)
}
