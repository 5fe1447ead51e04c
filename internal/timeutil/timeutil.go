package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the UTC calendar date of now.
func Today(now time.Time) string {
	return FormatDate(now.UTC())
}

// NormalizeDate returns value when it is a valid date, or today's UTC date when empty.
func NormalizeDate(value string, now time.Time) (string, error) {
	if value == "" {
		return Today(now), nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return FormatDate(parsed), nil
}
