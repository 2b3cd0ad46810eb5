package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists tally snapshots and the manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time

	// mu serializes manifest read-modify-write cycles.
	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteResult snapshots res under its matchup ID (or query) for the UTC date it was generated.
func (w *Writer) WriteResult(ctx context.Context, res predictions.Result) error {
	_ = ctx
	id := res.MatchupID
	if id == "" {
		id = res.Query
	}
	generated := res.GeneratedAt
	if generated.IsZero() {
		generated = w.now()
	}
	return w.WriteTally(id, timeutil.UTCDate(generated), res)
}

// WriteTally writes the snapshot for matchupID on date (YYYY-MM-DD) and prunes old snapshots.
// Rewriting identical content leaves the file untouched.
func (w *Writer) WriteTally(matchupID, date string, res predictions.Result) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if date == "" {
		return fmt.Errorf("date required")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := TallySnapshotPath(w.basePath, matchupID, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(matchupID, date, res.RunID)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(matchupID, date, res.RunID)
}

func (w *Writer) updateManifest(matchupID, date, runID string) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestFile), w.retentionDays)
	key := SafeID(matchupID)

	dates, err := listDates(matchupDir(w.basePath, matchupID))
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Tallies[key] = TallyMeta{
		Dates:         w.pruneOldSnapshots(matchupID, dates),
		LastRefreshed: w.now().UTC(),
		LastRunID:     runID,
	}
	m.Retention.TallyDays = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func listDates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, name[:len(name)-len(".json")])
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(matchupID string, dates []string) []string {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(TallySnapshotPath(w.basePath, matchupID, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
