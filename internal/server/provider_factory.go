package server

import (
	"log/slog"
	"net/http"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/fixture"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/serpapi"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/serper"
)

// ProviderSet holds every search backend the process can route a matchup to.
type ProviderSet struct {
	Search  map[string]providers.SearchProvider
	Default string
	// Fixture doubles as the page fetcher for fixture hits.
	Fixture *fixture.Provider
}

// Fetchers returns per-provider fetch overrides.
func (p ProviderSet) Fetchers() map[string]fetch.Fetcher {
	if p.Fixture == nil {
		return nil
	}
	return map[string]fetch.Fetcher{providerFixture: p.Fixture}
}

// providerFactory assembles search backends with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// BuildProviders wires the keyed search backends and the offline fixture from cfg.
func BuildProviders(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) ProviderSet {
	return newProviderFactory(logger, recorder).build(cfg)
}

func (f providerFactory) build(cfg config.Config) ProviderSet {
	fx := fixture.New()
	set := ProviderSet{
		Search:  map[string]providers.SearchProvider{providerFixture: fx},
		Fixture: fx,
	}
	for _, name := range keyedProviders {
		base := selectProvider(name, cfg)
		if base == nil {
			logging.Debug(f.logger, "search provider not configured", logging.FieldProvider, name)
			continue
		}
		limited := providers.NewRateLimitedProvider(base, cfg.Search.MinInterval, f.logger)
		set.Search[name] = providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.Search.RetryAttempts, 0)
	}
	set.Default = resolveDefaultProvider(cfg.Search.Provider, set.Search, f.logger)
	return set
}

// selectProvider returns the raw client for a keyed provider, or nil when it has no key.
func selectProvider(name string, cfg config.Config) providers.SearchProvider {
	key := cfg.Search.APIKey(name)
	if key == "" {
		return nil
	}
	client := &http.Client{Timeout: cfg.Search.Timeout}
	switch name {
	case providerSerper:
		return serper.NewClient(serper.Config{
			BaseURL:    cfg.Search.SerperBaseURL,
			APIKey:     key,
			HTTPClient: client,
		})
	case providerSerpAPI:
		return serpapi.NewClient(serpapi.Config{
			BaseURL:    cfg.Search.SerpAPIBaseURL,
			APIKey:     key,
			HTTPClient: client,
			UserAgent:  cfg.Fetch.UserAgent,
		})
	default:
		return nil
	}
}
