package testutil

import (
	"context"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

// GoodSearcher returns the provided hits with no error.
type GoodSearcher struct {
	Hits []predictions.SearchHit
}

func (p GoodSearcher) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	_ = ctx
	_ = req
	return p.Hits, nil
}

// ErrSearcher always returns the provided error.
type ErrSearcher struct {
	Err error
}

func (p ErrSearcher) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	return nil, p.Err
}

// UnavailableSearcher returns ErrProviderUnavailable.
type UnavailableSearcher struct{}

func (UnavailableSearcher) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	return nil, providers.ErrProviderUnavailable
}

// StaticFetcher serves pages by URL; unknown URLs return a 404 status error.
type StaticFetcher map[string]fetch.Page

func (f StaticFetcher) Fetch(ctx context.Context, url string) (fetch.Page, error) {
	_ = ctx
	page, ok := f[url]
	if !ok {
		return fetch.Page{}, &fetch.StatusError{URL: url, StatusCode: 404}
	}
	return page, nil
}
