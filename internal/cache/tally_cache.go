// Package cache memoizes tally results in Redis and collapses concurrent
// identical requests into one pipeline run.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
)

const (
	keyPrefix  = "tally:"
	defaultTTL = 15 * time.Minute
)

// TallyCache stores results keyed by the normalized matchup.
type TallyCache struct {
	backend  Backend
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewTallyCache wraps backend. A non-positive ttl falls back to the default.
func NewTallyCache(backend Backend, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *TallyCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TallyCache{
		backend:  backend,
		ttl:      ttl,
		logger:   logger,
		recorder: recorder,
	}
}

// Get looks up a cached result. Backend failures count as misses.
func (c *TallyCache) Get(ctx context.Context, m predictions.Matchup) (predictions.Result, bool) {
	if c == nil || c.backend == nil {
		return predictions.Result{}, false
	}
	key := Key(m)
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		if !IsMiss(err) {
			c.logError("cache get failed", key, err)
		}
		c.recorder.RecordCacheLookup(false)
		return predictions.Result{}, false
	}
	var res predictions.Result
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		c.logError("cache unmarshal failed", key, err)
		c.recorder.RecordCacheLookup(false)
		return predictions.Result{}, false
	}
	c.recorder.RecordCacheLookup(true)
	return res, true
}

// Store writes res under the matchup key. Failures are logged only.
func (c *TallyCache) Store(ctx context.Context, m predictions.Matchup, res predictions.Result) {
	if c == nil || c.backend == nil {
		return
	}
	key := Key(m)
	data, err := json.Marshal(res)
	if err != nil {
		c.logError("cache marshal failed", key, err)
		return
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		c.logError("cache set failed", key, err)
	}
}

// GetOrCompute returns the cached result or runs compute once per key across
// concurrent callers. The bool reports a cache hit.
func (c *TallyCache) GetOrCompute(ctx context.Context, m predictions.Matchup, compute func() (predictions.Result, error)) (predictions.Result, bool, error) {
	if c == nil || c.backend == nil {
		res, err := compute()
		return res, false, err
	}
	if res, ok := c.Get(ctx, m); ok {
		return res, true, nil
	}
	val, err, _ := c.group.Do(Key(m), func() (any, error) {
		if res, ok := c.Get(ctx, m); ok {
			return res, nil
		}
		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.Store(ctx, m, res)
		return res, nil
	})
	if err != nil {
		return predictions.Result{}, false, err
	}
	return val.(predictions.Result), false, nil
}

// Close releases the backend.
func (c *TallyCache) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

// Key derives the cache key from every input that changes a tally.
// Team synonyms keep their order because the first one labels the result.
// Source lists are order-insensitive and the query ignores case and spacing.
// The matchup ID is part of the key because results carry it.
func Key(m predictions.Matchup) string {
	raw := strings.Join([]string{
		"id=" + strings.TrimSpace(m.ID),
		strings.Join(strings.Fields(strings.ToLower(m.Query)), " "),
		strings.Join(m.TeamA.Synonyms, ","),
		strings.Join(m.TeamB.Synonyms, ","),
		fmt.Sprintf("days=%d", m.WindowDays),
		fmt.Sprintf("results=%d", m.Results),
		normalizedList(m.Allow),
		normalizedList(m.Deny),
		strings.ToLower(m.Provider),
	}, "|")
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func normalizedList(items []string) string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

func (c *TallyCache) logError(msg, key string, err error) {
	if c.logger != nil {
		c.logger.Error(msg, "key", key, "err", err)
	}
}
