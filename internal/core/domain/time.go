package domain

import "time"

// TimeLayout is the at-rest timestamp layout. Unlike time.RFC3339Nano it
// keeps trailing fractional-second zeros, so every rendered timestamp has the
// same width and lexicographic order matches chronological order. The
// time-ordered queries compare these strings directly and depend on that.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp. It accepts both TimeLayout and
// variable-width RFC 3339 strings, so documents written before the layout was
// fixed still load.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
