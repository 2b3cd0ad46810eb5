package testutil

import (
	"errors"
	"testing"

	"github.com/beto15pr/sports-tally-scraper/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a sample result for matchupID on date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, matchupID, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, matchupID, date); err != nil {
		t.Fatalf("failed to write snapshot %s/%s: %v", matchupID, date, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, matchupID, date string) error {
	if w == nil {
		return errors.New("nil snapshot writer")
	}
	return w.WriteTally(matchupID, date, SampleResult("run-"+date, matchupID))
}

// SnapshotPath returns the expected file path for a matchup snapshot.
func SnapshotPath(w *snapshots.Writer, matchupID, date string) string {
	return snapshots.TallySnapshotPath(w.BasePath(), matchupID, date)
}
