package snapshots

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	w.now = fixedClock(time.Date(2024, 9, 12, 20, 0, 0, 0, time.UTC))

	writeTally(t, w, "texans-49ers", "2024-09-12", simpleResult("run-1"))
	requireSnapshotExists(t, w, "texans-49ers", "2024-09-12")

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	meta, ok := m.Tallies["texans-49ers"]
	if !ok {
		t.Fatalf("expected manifest entry for matchup, got %+v", m.Tallies)
	}
	assertDatesEqual(t, meta.Dates, []string{"2024-09-12"})
	if meta.LastRunID != "run-1" || m.Retention.TallyDays != 10 {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestWriterSkipsIdenticalRewrite(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	w.now = fixedClock(time.Date(2024, 9, 12, 20, 0, 0, 0, time.UTC))

	writeTally(t, w, "m", "2024-09-12", simpleResult("run-1"))
	path := TallySnapshotPath(dir, "m", "2024-09-12")
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	writeTally(t, w, "m", "2024-09-12", simpleResult("run-1"))
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected identical snapshot to be left untouched, mtime %s", info.ModTime())
	}

	writeTally(t, w, "m", "2024-09-12", simpleResult("run-2"))
	info, _ = os.Stat(path)
	if info.ModTime().Equal(old) {
		t.Fatalf("expected changed snapshot to be rewritten")
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 1)
	w.now = fixedClock(time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC))

	for _, d := range []string{"2024-09-01", "2024-09-11", "2024-09-12"} {
		writeTally(t, w, "m", d, simpleResult("run-"+d))
	}

	if _, err := os.Stat(TallySnapshotPath(dir, "m", "2024-09-01")); err == nil {
		t.Fatalf("expected old snapshot to be pruned")
	}
	requireSnapshotExists(t, w, "m", "2024-09-12")

	m, _ := ReadManifest(dir)
	assertDatesEqual(t, m.Tallies["m"].Dates, []string{"2024-09-11", "2024-09-12"})
}

func TestWriterKeepsMatchupsSeparate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)
	w.now = fixedClock(time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC))

	writeTally(t, w, "Chiefs vs Bills", "2024-09-12", simpleResult("a"))
	writeTally(t, w, "texans-49ers", "2024-09-11", simpleResult("b"))

	m, _ := ReadManifest(dir)
	if len(m.Tallies) != 2 {
		t.Fatalf("expected two matchup entries, got %+v", m.Tallies)
	}
	if _, ok := m.Tallies["chiefs-vs-bills"]; !ok {
		t.Fatalf("expected sanitized matchup key, got %+v", m.Tallies)
	}
}

func TestWriteResultUsesGeneratedDate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)
	w.now = fixedClock(time.Date(2024, 9, 13, 0, 0, 0, 0, time.UTC))

	res := simpleResult("run-1")
	res.GeneratedAt = time.Date(2024, 9, 12, 22, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	if err := w.WriteResult(context.Background(), res); err != nil {
		t.Fatalf("write result: %v", err)
	}
	requireSnapshotExists(t, w, "texans-49ers", "2024-09-13")

	res.MatchupID = ""
	if err := w.WriteResult(context.Background(), res); err != nil {
		t.Fatalf("write result without id: %v", err)
	}
	requireSnapshotExists(t, w, SafeID(res.Query), "2024-09-13")
}

func TestWriterHandlesNilAndBadDate(t *testing.T) {
	var w *Writer
	if err := w.WriteTally("m", "2024-01-01", simpleResult("x")); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir(), 1)
	if err := w.WriteTally("m", "", simpleResult("x")); err == nil {
		t.Fatalf("expected error for empty date")
	}
	if err := w.WriteTally("m", "yesterday", simpleResult("x")); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected retention to default when non-positive provided")
	}
}

func TestListDatesIgnoresNonJSONAndDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2024-01-01.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write extra file: %v", err)
	}

	dates, err := listDates(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assertDatesEqual(t, dates, []string{"2024-01-01"})

	missing, err := listDates(filepath.Join(dir, "absent"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty dates for missing dir, got %v err %v", missing, err)
	}
}

func TestBasePathExposesRoot(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 1)
	if w.BasePath() != base {
		t.Fatalf("expected base path %s, got %s", base, w.BasePath())
	}
	var nilWriter *Writer
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
}
