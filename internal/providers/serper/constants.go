package serper

import "time"

const (
	providerName       = "serper"
	defaultBaseURL     = "https://google.serper.dev"
	searchPath         = "/search"
	apiKeyHeader       = "X-API-KEY"
	defaultHTTPTimeout = 30 * time.Second
	defaultNum         = 10
	maxNum             = 100
)
