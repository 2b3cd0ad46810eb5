package testutil

import (
	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/fixture"
)

// TallyDefaults are request defaults with no source filtering.
func TallyDefaults() config.TallyDefaults {
	return config.TallyDefaults{Results: 10, Days: 7, BatchConcurrency: 2}
}

// NewFixtureRunner builds a pipeline runner backed by the offline fixture provider.
func NewFixtureRunner(sinks ...pipeline.Sink) *pipeline.Runner {
	fx := fixture.New()
	return pipeline.New(pipeline.Config{
		Providers:       map[string]providers.SearchProvider{"fixture": fx},
		DefaultProvider: "fixture",
		Fetcher:         fx,
		Defaults:        TallyDefaults(),
		Sinks:           sinks,
	})
}

// NewRunnerWithSearcher builds a runner whose only provider is searcher.
func NewRunnerWithSearcher(searcher providers.SearchProvider, pages StaticFetcher) *pipeline.Runner {
	return pipeline.New(pipeline.Config{
		Providers:       map[string]providers.SearchProvider{"stub": searcher},
		DefaultProvider: "stub",
		Fetcher:         pages,
		Defaults:        TallyDefaults(),
	})
}
