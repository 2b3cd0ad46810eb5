// Package timeutil holds the date and timestamp formats shared by reports and snapshots.
package timeutil

import "time"

// DateLayout is the snapshot date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// UTCDate formats t as the YYYY-MM-DD date it falls on in UTC.
func UTCDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatPublished renders a publish time as RFC3339 UTC, or "" when unknown.
func FormatPublished(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
