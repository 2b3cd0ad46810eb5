package store

import (
	"context"
	"sort"
	"sync"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

const defaultCapacity = 200

// MemoryStore keeps the most recent tally results in memory, keyed by run ID.
type MemoryStore struct {
	mu       sync.RWMutex
	results  map[string]predictions.Result
	order    []string
	capacity int
}

// NewMemoryStore constructs an empty MemoryStore holding at most capacity results.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryStore{
		results:  make(map[string]predictions.Result),
		capacity: capacity,
	}
}

// Save records res, evicting the oldest entry once capacity is reached.
func (s *MemoryStore) Save(ctx context.Context, res predictions.Result) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[res.RunID]; !exists {
		s.order = append(s.order, res.RunID)
	}
	s.results[res.RunID] = res
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
	return nil
}

// Get retrieves a result by run ID.
func (s *MemoryStore) Get(runID string) (predictions.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[runID]
	return res, ok
}

// List returns a copy of the stored results, newest first.
func (s *MemoryStore) List() []predictions.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]predictions.Result, 0, len(s.results))
	for _, res := range s.results {
		out = append(out, res)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GeneratedAt.Equal(out[j].GeneratedAt) {
			return out[i].RunID < out[j].RunID
		}
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out
}

// Latest returns the newest result recorded for a matchup ID.
func (s *MemoryStore) Latest(matchupID string) (predictions.Result, bool) {
	for _, res := range s.List() {
		if res.MatchupID == matchupID {
			return res, true
		}
	}
	return predictions.Result{}, false
}

// Len reports how many results are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
