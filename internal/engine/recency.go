package engine

import "time"

const day = 24 * time.Hour

// Window is a trailing recency window anchored to a single reference time.
type Window struct {
	now    time.Time
	cutoff time.Time
}

// NewWindow anchors a window of days ending at now. Build it once per run.
func NewWindow(now time.Time, days int) Window {
	now = now.UTC()
	return Window{now: now, cutoff: now.Add(-time.Duration(days) * day)}
}

// Cutoff returns the inclusive lower bound.
func (w Window) Cutoff() time.Time {
	return w.cutoff
}

// Now returns the reference time the window was built from.
func (w Window) Now() time.Time {
	return w.now
}

// Admits reports whether ts is present and not older than the cutoff.
func (w Window) Admits(ts *time.Time) bool {
	if ts == nil {
		return false
	}
	return !ts.Before(w.cutoff)
}

// IsWithinWindow is the one-shot form of Window.Admits.
func IsWithinWindow(ts *time.Time, days int, now time.Time) bool {
	return NewWindow(now, days).Admits(ts)
}
