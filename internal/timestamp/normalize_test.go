package timestamp

import (
	"errors"
	"testing"
	"time"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024:04:01 05:36:42+02:00", "2024-04-01 05:36:42.000000+02:00"},
		{"2024:03:31 22:38:17", "2024-03-31 22:38:17.000000+00:00"},
		{"2022:01:01 00:00:00", "2022-01-01 00:00:00.000000+00:00"},
		{"2024:03:31 22:38:17.767+08:00", "2024-03-31 22:38:17.767000+08:00"},
		{"2024:03:31 14:38:15.29Z", "2024-03-31 14:38:15.290000+00:00"},
		{"2024-03-31 14:38:15.1234567-05:30", "2024-03-31 14:38:15.123456-05:30"},
		{"  2024:03:31 14:38:15  ", "2024-03-31 14:38:15.000000+00:00"},
		{"2024:03:31 14:38:15 DST", "2024-03-31 14:38:15.000000+00:00"},
	}
	for _, tt := range tests {
		got, err := Canonical(tt.raw)
		if err != nil {
			t.Errorf("Canonical(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize_OffsetPreserved(t *testing.T) {
	ts, err := Normalize("2024:04:01 05:36:42+02:00")
	if err != nil {
		t.Fatal(err)
	}
	if got := Offset(ts); got != "+02:00" {
		t.Errorf("offset = %q, want +02:00", got)
	}
	if got := Micros(ts); got != 0 {
		t.Errorf("micros = %d, want 0", got)
	}
	if got := ts.Format("2006-01-02 15:04:05"); got != "2024-04-01 05:36:42" {
		t.Errorf("wall clock = %q", got)
	}
}

func TestNormalize_ZuluFraction(t *testing.T) {
	ts, err := Normalize("2024:03:31 14:38:15.29Z")
	if err != nil {
		t.Fatal(err)
	}
	if got := Offset(ts); got != "+00:00" {
		t.Errorf("offset = %q, want +00:00", got)
	}
	if got := Micros(ts); got != 290000 {
		t.Errorf("micros = %d, want 290000", got)
	}
}

func TestNormalize_DefaultsToUTC(t *testing.T) {
	ts, err := Normalize("2022:01:01 00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	_, off := ts.Zone()
	if off != 0 {
		t.Errorf("offset seconds = %d, want 0", off)
	}
	if Micros(ts) != 0 {
		t.Errorf("micros = %d, want 0", Micros(ts))
	}
	want := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts, want)
	}
}

func TestNormalize_Errors(t *testing.T) {
	for _, raw := range []string{"not a date", "", "2024:04:01", "2024/04/01 05:36:42", "24:04:01 05:36:42"} {
		_, err := Normalize(raw)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("Normalize(%q) error = %v, want ErrFormat", raw, err)
		}
	}
}

func TestNormalize_ImpossibleFields(t *testing.T) {
	for _, raw := range []string{"0000:00:00 00:00:00", "2024:13:01 00:00:00", "2024:02:30 25:00:00"} {
		_, err := Normalize(raw)
		if !errors.Is(err, ErrInvalidInstant) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidInstant", raw, err)
		}
		if errors.Is(err, ErrFormat) {
			t.Errorf("Normalize(%q) should not report ErrFormat", raw)
		}
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("", 2*3600),
		time.FixedZone("", -(5*3600 + 30*60)),
		time.FixedZone("", 14*3600),
	}
	instants := []time.Time{
		time.Date(2024, 4, 1, 5, 36, 42, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 999999000, time.UTC),
		time.Date(2010, 6, 15, 12, 0, 0, 290000000, time.UTC),
		time.Date(2031, 2, 28, 0, 0, 1, 1000, time.UTC),
	}
	for _, loc := range zones {
		for _, in := range instants {
			in = in.In(loc)
			raw := in.Format(RawLayout)
			got, err := Normalize(raw)
			if err != nil {
				t.Errorf("Normalize(%q): %v", raw, err)
				continue
			}
			if !got.Equal(in) {
				t.Errorf("round trip %q: got %v, want %v", raw, got, in)
			}
			if Offset(got) != Offset(in) {
				t.Errorf("round trip %q: offset %s, want %s", raw, Offset(got), Offset(in))
			}
		}
	}
}
