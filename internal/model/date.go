package model

import "time"

// DateLayout is the calendar-date format used by the metadata providers.
const DateLayout = "2006-01-02"

// ParseDate parses a provider date string (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// InWindow reports whether date falls within [from, from+days].
func InWindow(date, from time.Time, days int) bool {
	cutoff := from.AddDate(0, 0, days)
	return !date.Before(from) && !date.After(cutoff)
}
