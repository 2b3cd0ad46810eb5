package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

// Config controls how the SerpAPI client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	UserAgent  string
}

// Client queries SerpAPI's Google engine.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a SerpAPI client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		userAgent:  ua,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Search issues the query and returns organic results in rank order.
func (c *Client) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", providerName, providers.ErrMissingAPIKey)
	}
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := providers.CheckResponse(providerName, resp, c.now()); err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", providerName, err)
	}
	if payload.Error != "" && len(payload.OrganicResults) == 0 {
		return nil, &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: payload.Error}
	}
	return mapHits(payload.OrganicResults), nil
}

func (c *Client) buildRequest(ctx context.Context, req providers.SearchRequest) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath, nil)
	if err != nil {
		return nil, err
	}

	q := httpReq.URL.Query()
	q.Set("engine", defaultEngine)
	q.Set("q", req.Query)
	q.Set("num", strconv.Itoa(resolveNum(req.Num)))
	q.Set("api_key", c.apiKey)
	if req.TimeRange != "" {
		q.Set("tbs", req.TimeRange)
	}
	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Set("User-Agent", c.userAgent)
	return httpReq, nil
}
