package testutil

import (
	"testing"
	"time"
)

// MustTime parses an RFC3339 timestamp, failing the test when it is malformed.
func MustTime(t testing.TB, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t.Fatalf("invalid RFC3339 timestamp %q: %v", v, err)
	}
	return ts
}

// Ago returns now minus d in UTC, in the pointer form documents carry.
func Ago(now time.Time, d time.Duration) *time.Time {
	ts := now.Add(-d).UTC()
	return &ts
}
