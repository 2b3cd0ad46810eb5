package config

import (
	"strings"
	"time"
)

// SearchConfig selects the search backend and carries its credentials.
type SearchConfig struct {
	Provider       string
	SerperBaseURL  string
	SerperAPIKey   string
	SerpAPIBaseURL string
	SerpAPIKey     string
	Timeout        time.Duration
	RetryAttempts  int
	MinInterval    time.Duration
}

// APIKey returns the key for the named provider.
func (c SearchConfig) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "serper":
		return c.SerperAPIKey
	case "serpapi":
		return c.SerpAPIKey
	default:
		return ""
	}
}

func loadSearch() SearchConfig {
	return SearchConfig{
		Provider:       strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		SerperBaseURL:  envOrDefault(envSerperBaseURL, defaultSerperBaseURL),
		SerperAPIKey:   firstEnv(envSerperKey, envSerperKeyAlt),
		SerpAPIBaseURL: envOrDefault(envSerpAPIBaseURL, defaultSerpAPIBaseURL),
		SerpAPIKey:     firstEnv(envSerpAPIKey),
		Timeout:        durationEnvOrDefault(envSearchTimeout, defaultSearchTimeout),
		RetryAttempts:  intEnvOrDefault(envSearchRetries, defaultSearchRetries),
		MinInterval:    durationEnvOrDefault(envSearchInterval, defaultSearchInterval),
	}
}
