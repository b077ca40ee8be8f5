package domain

import (
	"sort"
	"testing"
	"time"
)

func TestFormatTimeFixedWidth(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 120_000_000, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 123_000_000, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 123_456_789, time.UTC),
	}

	want := len(FormatTime(times[0]))
	for _, tm := range times {
		if got := len(FormatTime(tm)); got != want {
			t.Errorf("width of %s: got %d, want %d", FormatTime(tm), got, want)
		}
	}
}

func TestFormatTimeLexicographicOrderIsChronological(t *testing.T) {
	// Same second, fractional parts of different precision. A layout that
	// trims trailing zeros would sort .12 after .123 as a string.
	times := []time.Time{
		time.Date(2026, 9, 1, 10, 0, 0, 123_000_000, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 120_000_000, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 1, 0, time.UTC),
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	rendered := make([]string, len(times))
	for i, tm := range times {
		rendered[i] = FormatTime(tm)
	}
	sort.Strings(rendered)

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i, tm := range times {
		if rendered[i] != FormatTime(tm) {
			t.Fatalf("position %d: string sort gave %s, chronological is %s", i, rendered[i], FormatTime(tm))
		}
	}
}

func TestParseTimeAcceptsBothLayouts(t *testing.T) {
	want := time.Date(2026, 9, 1, 10, 0, 0, 120_000_000, time.UTC)

	for _, s := range []string{
		"2026-09-01T10:00:00.120000000Z",
		"2026-09-01T10:00:00.12Z",
	} {
		got, err := ParseTime(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("parse %q: got %v, want %v", s, got, want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	in := time.Date(2026, 9, 1, 10, 0, 0, 123_456_789, time.UTC)
	out, err := ParseTime(FormatTime(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip: got %v, want %v", out, in)
	}
}
