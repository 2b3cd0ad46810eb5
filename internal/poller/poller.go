package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
)

const defaultInterval = 30 * time.Minute

// Refresher re-runs matchups without consulting the result cache.
type Refresher interface {
	RefreshBatch(ctx context.Context, matchups []predictions.Matchup) []pipeline.BatchItem
}

// MatchupSource returns the current watchlist. It is called every cycle so
// edits to the underlying file are picked up without a restart.
type MatchupSource func() ([]predictions.Matchup, error)

// Poller re-tallies the watchlist on an interval.
type Poller struct {
	refresher Refresher
	source    MatchupSource
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	cycleMu  sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Matchups            int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, source MatchupSource, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		source:    source,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm results on boot.
		p.RunOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.RunOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// RunOnce refreshes every watchlist matchup and returns the per-matchup outcomes.
// Overlapping calls are serialized.
func (p *Poller) RunOnce(ctx context.Context) []pipeline.BatchItem {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.now()
	p.recordAttempt(start)

	items, err := p.cycle(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "watchlist refresh failed", err,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return items
	}

	p.recordSuccess(start, len(items))
	logging.Info(p.logger, "watchlist refreshed",
		logging.FieldCount, len(items),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return items
}

func (p *Poller) cycle(ctx context.Context) ([]pipeline.BatchItem, error) {
	if p.source == nil || p.refresher == nil {
		return nil, errors.New("poller is not configured")
	}
	matchups, err := p.source()
	if err != nil {
		return nil, err
	}
	items := p.refresher.RefreshBatch(ctx, matchups)

	var errs []error
	for _, item := range items {
		if item.Error != "" {
			errs = append(errs, fmt.Errorf("%s: %s", matchupName(item.Matchup), item.Error))
		}
	}
	return items, errors.Join(errs...)
}

func matchupName(m predictions.Matchup) string {
	if m.ID != "" {
		return m.ID
	}
	return m.Query
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, matchups int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Matchups = matchups
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
