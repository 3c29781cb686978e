// Package resolver picks the "date taken" of a media file from the text dump
// of its metadata.
//
// A metadata dump is read line by line with a small grammar:
//
//	line  = label ":" value
//	label = one or more characters other than ":" (surrounding space ignored)
//	value = date-like text ("YYYY:MM:DD HH:MM:SS" with optional fraction and zone)
//
// Every line that fits the grammar and normalizes cleanly becomes a candidate;
// the candidate with the highest-priority label wins.
package resolver

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nir0k/ImageDater/internal/timestamp"
)

// ErrNotDateLine is returned by ParseLine for lines outside the grammar.
var ErrNotDateLine = errors.New("not a labeled date line")

// FieldPriority lists the metadata labels trusted for "date taken", most
// trusted first. Labels not listed here are never used.
var FieldPriority = [...]string{
	"Date/Time Original",
	"Creation Date",
	"Media Create Date",
	"Track Create Date",
	"Create Date",
	"Date Created",
	"Modify Date",
	"File Modification Date/Time",
}

var lineRe = regexp.MustCompile(`^([^:]+):\s+(\d{4}[:-]\d{2}[:-]\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?(?:[+-]\d{2}:\d{2})?Z?)`)

// Field is one labeled, still unparsed metadata value.
type Field struct {
	Label string
	Raw   string
}

// Candidates maps a metadata label to its normalized timestamp.
type Candidates map[string]time.Time

// Rejected records a date line whose value could not be normalized.
type Rejected struct {
	Field Field
	Err   error
}

// ParseLine splits a single metadata line into label and raw date value.
func ParseLine(line string) (Field, error) {
	m := lineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return Field{}, ErrNotDateLine
	}
	label := strings.TrimSpace(m[1])
	if label == "" {
		return Field{}, ErrNotDateLine
	}
	return Field{Label: label, Raw: m[2]}, nil
}

// ParseText builds the candidate set from a metadata dump. Values that fail
// to normalize are dropped and reported in the second return value; they
// never stop the scan. A repeated label keeps its last value.
func ParseText(text string) (Candidates, []Rejected) {
	out := make(Candidates)
	var rejected []Rejected

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		field, err := ParseLine(sc.Text())
		if err != nil {
			continue
		}
		ts, err := timestamp.Normalize(field.Raw)
		if err != nil {
			rejected = append(rejected, Rejected{Field: field, Err: err})
			continue
		}
		out[field.Label] = ts
	}
	return out, rejected
}

// Resolve returns the timestamp of the highest-priority label present in c
// together with that label. ok is false when no listed label is present.
func Resolve(c Candidates) (ts time.Time, label string, ok bool) {
	for _, field := range FieldPriority {
		if v, found := c[field]; found {
			return v, field, true
		}
	}
	return time.Time{}, "", false
}

// Result describes how a date was chosen for one metadata dump.
type Result struct {
	Date       time.Time
	Field      string
	Found      bool
	Candidates Candidates
	Rejected   []Rejected
}

// FromText parses text and resolves it in one step.
func FromText(text string) Result {
	c, rejected := ParseText(text)
	ts, field, ok := Resolve(c)
	return Result{
		Date:       ts,
		Field:      field,
		Found:      ok,
		Candidates: c,
		Rejected:   rejected,
	}
}

func (r Rejected) String() string {
	return fmt.Sprintf("%s=%q: %v", r.Field.Label, r.Field.Raw, r.Err)
}
