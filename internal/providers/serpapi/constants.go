package serpapi

import "time"

const (
	providerName       = "serpapi"
	defaultBaseURL     = "https://serpapi.com"
	searchPath         = "/search.json"
	defaultEngine      = "google"
	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultHTTPTimeout = 30 * time.Second
	defaultNum         = 10
	maxNum             = 100
)
