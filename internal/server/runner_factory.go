package server

import (
	"log/slog"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/fixture"
	"github.com/beto15pr/sports-tally-scraper/internal/snapshots"
	"github.com/beto15pr/sports-tally-scraper/internal/store"
)

// BuildRunner wires a pipeline runner over the given providers and backing services.
func BuildRunner(cfg config.Config, set ProviderSet, infra Infra, sinks []pipeline.Sink, logger *slog.Logger, recorder *metrics.Recorder) *pipeline.Runner {
	return pipeline.New(pipeline.Config{
		Providers:       set.Search,
		DefaultProvider: set.Default,
		Fetcher: fetch.NewClient(fetch.Config{
			Timeout:     cfg.Fetch.Timeout,
			UserAgent:   cfg.Fetch.UserAgent,
			MaxBytes:    cfg.Fetch.MaxBytes,
			MinInterval: cfg.Fetch.MinInterval,
		}),
		Fetchers:    set.Fetchers(),
		Defaults:    tallyDefaults(cfg.Tally, set),
		Concurrency: cfg.Fetch.Concurrency,
		Cache:       infra.Cache,
		Sinks:       sinks,
		Logger:      logger,
		Recorder:    recorder,
	})
}

// tallyDefaults admits fixture links through a non-empty default allowlist.
func tallyDefaults(d config.TallyDefaults, set ProviderSet) config.TallyDefaults {
	if set.Fixture == nil || len(d.Allow) == 0 {
		return d
	}
	for _, domain := range d.Allow {
		if strings.EqualFold(domain, fixture.Host) {
			return d
		}
	}
	allow := make([]string, 0, len(d.Allow)+1)
	allow = append(allow, d.Allow...)
	d.Allow = append(allow, fixture.Host)
	return d
}

// resultSinks fans fresh results out to every enabled destination.
func resultSinks(memory *store.MemoryStore, writer *snapshots.Writer, infra Infra) []pipeline.Sink {
	var sinks []pipeline.Sink
	if memory != nil {
		sinks = append(sinks, pipeline.Sink{Name: "memory", Record: memory.Save})
	}
	if writer != nil {
		sinks = append(sinks, pipeline.Sink{Name: "snapshots", Record: writer.WriteResult})
	}
	if infra.History != nil {
		sinks = append(sinks, pipeline.Sink{Name: "history", Record: infra.History.Save})
	}
	if infra.Events != nil {
		sinks = append(sinks, pipeline.Sink{Name: "events", Record: infra.Events.PublishResult})
	}
	return sinks
}
