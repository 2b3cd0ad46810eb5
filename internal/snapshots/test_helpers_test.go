package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

func simpleResult(runID string) predictions.Result {
	return predictions.Result{
		RunID:       runID,
		MatchupID:   "texans-49ers",
		Query:       "Texans vs 49ers prediction",
		TeamALabel:  "Texans",
		TeamBLabel:  "49ers",
		Days:        5,
		Tally:       predictions.Tally{VotesA: 2, VotesB: 1},
		Dominant:    predictions.DominantA,
		GeneratedAt: time.Date(2024, 9, 12, 18, 0, 0, 0, time.UTC),
	}
}

func writeTally(t *testing.T, w *Writer, matchupID, date string, res predictions.Result) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteTally(matchupID, date, res); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, matchupID, date string) {
	t.Helper()
	if _, err := os.Stat(TallySnapshotPath(w.BasePath(), matchupID, date)); err != nil {
		t.Fatalf("expected snapshot for %s/%s to be written: %v", matchupID, date, err)
	}
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
