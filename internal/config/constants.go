package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envSerperKey       = "SERPER_API_KEY"
	envSerperKeyAlt    = "SERPER_KEY"
	envSerpAPIKey      = "SERPAPI_KEY"
	envSerperBaseURL   = "SERPER_BASE_URL"
	envSerpAPIBaseURL  = "SERPAPI_BASE_URL"
	envSearchTimeout   = "SEARCH_TIMEOUT"
	envSearchRetries   = "SEARCH_RETRY_ATTEMPTS"
	envSearchInterval  = "SEARCH_MIN_INTERVAL"
	envFetchTimeout    = "FETCH_TIMEOUT"
	envFetchRate       = "FETCH_RATE"
	envFetchConc       = "FETCH_CONCURRENCY"
	envFetchMaxBytes   = "FETCH_MAX_BYTES"
	envFetchUserAgent  = "FETCH_USER_AGENT"
	envDefaultResults  = "TALLY_DEFAULT_RESULTS"
	envDefaultDays     = "TALLY_DEFAULT_DAYS"
	envDefaultAllow    = "TALLY_ALLOW"
	envDefaultDeny     = "TALLY_DENY"
	envBatchConc       = "TALLY_BATCH_CONCURRENCY"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envRedisAddr       = "REDIS_ADDR"
	envRedisPassword   = "REDIS_PASSWORD"
	envRedisDB         = "REDIS_DB"
	envCacheTTL        = "CACHE_TTL"
	envKafkaBrokers    = "KAFKA_BROKERS"
	envKafkaTopic      = "KAFKA_TOPIC"
	envDatabaseURL     = "DATABASE_URL"
	envSnapshotEnabled = "SNAPSHOT_ENABLED"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envWatchlistFile   = "WATCHLIST_FILE"
	envPollInterval    = "POLL_INTERVAL"

	defaultPort            = "4000"
	defaultProvider        = "serper"
	defaultSerperBaseURL   = "https://google.serper.dev"
	defaultSerpAPIBaseURL  = "https://serpapi.com"
	defaultSearchTimeout   = 30 * time.Second
	defaultSearchRetries   = 3
	defaultSearchInterval  = 250 * time.Millisecond
	defaultFetchTimeout    = 30 * time.Second
	defaultFetchRate       = time.Second
	defaultFetchConc       = 4
	defaultFetchMaxBytes   = 5 << 20
	defaultUserAgent       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0 Safari/537.36"
	defaultResults         = 50
	defaultDays            = 5
	defaultBatchConc       = 2
	defaultMetricsPort     = "9090"
	defaultServiceName     = "sports-tally"
	defaultCacheTTL        = 15 * time.Minute
	defaultKafkaTopic      = "tally-results"
	defaultSnapshotEnabled = true
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotDays    = 14
	// Search quotas are metered per query; a watchlist re-run every half hour stays well inside free tiers.
	defaultPollInterval = 30 * time.Minute
)

// DefaultAllow is the source allowlist applied to API requests that omit one.
var DefaultAllow = []string{
	"espn.com",
	"actionnetwork.com",
	"covers.com",
	"pickswise.com",
	"rotowire.com",
	"usatoday.com",
	"sportingnews.com",
	"cbssports.com",
	"oddsshark.com",
}

// DefaultDeny excludes social and video sites that rarely carry dated articles.
var DefaultDeny = []string{
	"reddit.com",
	"facebook.com",
	"youtube.com",
	"twitter.com",
	"x.com",
	"instagram.com",
}
