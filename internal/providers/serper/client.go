package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

// Config controls how the Serper client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client queries the Serper.dev Google search API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a Serper client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Search posts the query and returns organic results in rank order.
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
	return mapHits(payload.Organic), nil
}

func (c *Client) buildRequest(ctx context.Context, req providers.SearchRequest) (*http.Request, error) {
	body, err := json.Marshal(searchRequest{
		Q:   req.Query,
		Num: resolveNum(req.Num),
		TBS: req.TimeRange,
	})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}
