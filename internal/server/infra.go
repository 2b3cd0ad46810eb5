package server

import (
	"context"
	"log/slog"

	"github.com/beto15pr/sports-tally-scraper/internal/cache"
	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/events"
	"github.com/beto15pr/sports-tally-scraper/internal/history"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
)

// Infra holds the optional backing services. Any field may be nil.
type Infra struct {
	Cache   *cache.TallyCache
	Events  *events.Producer
	History *history.Store
}

var (
	redisConnect = func(cfg config.CacheConfig) (cache.Backend, error) { return cache.NewRedisClient(cfg) }
	historyOpen  = history.Open
)

// BuildInfra connects every configured backing service. A service that fails
// to connect is logged and left out.
func BuildInfra(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) Infra {
	var infra Infra
	if cfg.Cache.Enabled() {
		backend, err := redisConnect(cfg.Cache)
		if err != nil {
			logging.Warn(logger, "redis unavailable, continuing without result cache", "error", err)
		} else {
			infra.Cache = cache.NewTallyCache(backend, cfg.Cache.TTL, logger, recorder)
		}
	}
	if cfg.Events.Enabled() {
		infra.Events = events.NewProducer(cfg.Events, logger)
	}
	if cfg.History.Enabled() {
		store, err := historyOpen(ctx, cfg.History, logger)
		if err != nil {
			logging.Warn(logger, "postgres unavailable, continuing without run history", "error", err)
		} else {
			infra.History = store
		}
	}
	return infra
}

// Close releases every connected service.
func (i Infra) Close(logger *slog.Logger) {
	if err := i.Cache.Close(); err != nil {
		logging.Warn(logger, "closing result cache failed", "error", err)
	}
	if err := i.Events.Close(); err != nil {
		logging.Warn(logger, "closing kafka producer failed", "error", err)
	}
	if err := i.History.Close(); err != nil {
		logging.Warn(logger, "closing run history failed", "error", err)
	}
}
