package config

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	Search    SearchConfig
	Fetch     FetchConfig
	Tally     TallyDefaults
	Metrics   MetricsConfig
	Cache     CacheConfig
	Events    EventsConfig
	History   HistoryConfig
	Snapshots SnapshotConfig
	Watchlist WatchlistConfig
	// AdminToken guards the admin endpoints; empty disables them.
	AdminToken string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Search:     loadSearch(),
		Fetch:      loadFetch(),
		Tally:      loadTally(),
		Metrics:    loadMetrics(),
		Cache:      loadCache(),
		Events:     loadEvents(),
		History:    loadHistory(),
		Snapshots:  loadSnapshots(),
		Watchlist:  loadWatchlist(),
		AdminToken: envOrDefault(envAdminToken, ""),
	}
}
