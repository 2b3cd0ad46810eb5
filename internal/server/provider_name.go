package server

import (
	"log/slog"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

const (
	providerFixture = "fixture"
	providerSerper  = "serper"
	providerSerpAPI = "serpapi"
)

var keyedProviders = []string{providerSerper, providerSerpAPI}

// normalizeProviderName returns a lower-cased provider name, defaulting to the fixture.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return providerFixture
	}
	return name
}

// resolveDefaultProvider picks the configured provider when it is registered, else the fixture.
func resolveDefaultProvider(raw string, registered map[string]providers.SearchProvider, logger *slog.Logger) string {
	name := normalizeProviderName(raw)
	if _, ok := registered[name]; ok {
		return name
	}
	logging.Warn(logger, "search provider unavailable, falling back to fixture", logging.FieldProvider, name)
	return providerFixture
}
