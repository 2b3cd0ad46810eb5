package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
	"github.com/beto15pr/sports-tally-scraper/internal/snapshots"
)

// StubSearcher is a test double for providers.SearchProvider.
type StubSearcher struct {
	Hits   []predictions.SearchHit
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	LastReq providers.SearchRequest
}

// Search returns configured hits and error while tracking calls.
func (s *StubSearcher) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	_ = ctx
	notify(s.Notify)
	s.Calls.Add(1)
	s.mu.Lock()
	s.LastReq = req
	s.mu.Unlock()
	return s.Hits, s.Err
}

// StubRefresher is a test double for poller.Refresher. It echoes each matchup
// back as a result unless Err is set.
type StubRefresher struct {
	Err    string
	Calls  atomic.Int32
	Notify chan struct{}
}

// RefreshBatch returns one item per matchup.
func (s *StubRefresher) RefreshBatch(ctx context.Context, matchups []predictions.Matchup) []pipeline.BatchItem {
	_ = ctx
	notify(s.Notify)
	s.Calls.Add(1)
	items := make([]pipeline.BatchItem, len(matchups))
	for i, m := range matchups {
		items[i].Matchup = m
		if s.Err != "" {
			items[i].Error = s.Err
			continue
		}
		items[i].Result = &predictions.Result{MatchupID: m.ID, Query: m.Query}
	}
	return items
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Tallies map[string]map[string]predictions.Result // matchup -> date -> result
	LoadErr error
}

// LoadTally returns the stored result for matchupID on date.
func (s *StubSnapshotStore) LoadTally(matchupID, date string) (predictions.Result, error) {
	if s.LoadErr != nil {
		return predictions.Result{}, s.LoadErr
	}
	res, ok := s.Tallies[matchupID][date]
	if !ok {
		return predictions.Result{}, snapshots.ErrNoSnapshot
	}
	return res, nil
}

// LatestTally returns the result with the greatest date for matchupID.
func (s *StubSnapshotStore) LatestTally(matchupID string) (predictions.Result, error) {
	if s.LoadErr != nil {
		return predictions.Result{}, s.LoadErr
	}
	latest := ""
	for date := range s.Tallies[matchupID] {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return predictions.Result{}, snapshots.ErrNoSnapshot
	}
	return s.Tallies[matchupID][latest], nil
}

// StubSnapshotWriter records results passed to WriteResult.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written []predictions.Result
	Err     error
}

// WriteResult records res for verification in tests.
func (w *StubSnapshotWriter) WriteResult(ctx context.Context, res predictions.Result) error {
	_ = ctx
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Written = append(w.Written, res)
	return nil
}

// Count returns how many results were written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

func notify(ch chan struct{}) {
	if ch == nil {
		return
	}
	select {
	case <-ch:
	default:
		close(ch)
	}
}
