package config

import "time"

// FetchConfig controls how linked pages are downloaded.
type FetchConfig struct {
	Timeout     time.Duration
	MinInterval time.Duration // politeness delay between page fetches
	Concurrency int
	MaxBytes    int64
	UserAgent   string
}

func loadFetch() FetchConfig {
	return FetchConfig{
		Timeout:     durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		MinInterval: durationEnvOrDefault(envFetchRate, defaultFetchRate),
		Concurrency: intEnvOrDefault(envFetchConc, defaultFetchConc),
		MaxBytes:    int64(intEnvOrDefault(envFetchMaxBytes, defaultFetchMaxBytes)),
		UserAgent:   envOrDefault(envFetchUserAgent, defaultUserAgent),
	}
}
