package server

import (
	"context"
	"log/slog"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// buildWatchlist returns nil when no watchlist file is configured.
func buildWatchlist(cfg config.Config, refresher poller.Refresher, logger *slog.Logger, recorder *metrics.Recorder) *poller.Poller {
	if !cfg.Watchlist.Enabled() {
		return nil
	}
	path := cfg.Watchlist.File
	source := func() ([]predictions.Matchup, error) { return config.LoadMatchups(path) }
	return poller.New(refresher, source, logger, recorder, cfg.Watchlist.Interval)
}
