package config

import "time"

// CacheConfig points at the Redis instance used to cache tally results. Empty Addr disables caching.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool { return c.Addr != "" }

// EventsConfig points at the Kafka cluster that receives tally events. No brokers disables publishing.
type EventsConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured.
func (c EventsConfig) Enabled() bool { return len(c.Brokers) > 0 }

// HistoryConfig points at the Postgres database that stores run history. Empty DSN disables it.
type HistoryConfig struct {
	DSN string
}

// Enabled reports whether a DSN is configured.
func (c HistoryConfig) Enabled() bool { return c.DSN != "" }

func loadCache() CacheConfig {
	return CacheConfig{
		Addr:     envOrDefault(envRedisAddr, ""),
		Password: envOrDefault(envRedisPassword, ""),
		DB:       intEnvOrDefault(envRedisDB, 0),
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}

func loadEvents() EventsConfig {
	return EventsConfig{
		Brokers: listEnvOrDefault(envKafkaBrokers, nil),
		Topic:   envOrDefault(envKafkaTopic, defaultKafkaTopic),
	}
}

func loadHistory() HistoryConfig {
	return HistoryConfig{DSN: envOrDefault(envDatabaseURL, "")}
}
