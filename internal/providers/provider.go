package providers

import (
	"context"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// SearchRequest is one query against a search backend.
type SearchRequest struct {
	Query string
	// Num is the number of organic results requested; backends may return fewer.
	Num int
	// TimeRange is a backend recency hint such as "qdr:w"; empty means no hint.
	TimeRange string
}

// SearchProvider returns organic search hits for a query.
type SearchProvider interface {
	Search(ctx context.Context, req SearchRequest) ([]predictions.SearchHit, error)
}

// SearchFunc adapts a function to SearchProvider.
type SearchFunc func(ctx context.Context, req SearchRequest) ([]predictions.SearchHit, error)

// Search calls f.
func (f SearchFunc) Search(ctx context.Context, req SearchRequest) ([]predictions.SearchHit, error) {
	return f(ctx, req)
}
