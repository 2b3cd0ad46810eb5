package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxBytes  = 5 << 20
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config controls the HTTP page fetcher.
type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	MaxBytes   int64
	// MinInterval spaces consecutive fetches; zero disables the delay.
	MinInterval time.Duration
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches pages over HTTP with a shared politeness limiter.
type Client struct {
	httpClient httpDoer
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
}

// NewClient builds an HTTP fetcher from cfg, filling defaults.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		doer = &http.Client{Timeout: timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Client{
		httpClient: doer,
		userAgent:  ua,
		maxBytes:   maxBytes,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Fetch downloads url and extracts its page view.
func (c *Client) Fetch(ctx context.Context, url string) (Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Page{}, ctxErr
		}
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Page{}, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if !isHTML(resp.Header.Get("Content-Type")) {
		return Page{}, fmt.Errorf("fetch %s: %w: %s", url, ErrUnsupportedContent, resp.Header.Get("Content-Type"))
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: parse html: %w", url, err)
	}
	page := Extract(doc)
	page.URL = url
	return page, nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
