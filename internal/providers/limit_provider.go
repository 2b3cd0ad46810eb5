package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// rateLimitedProvider wraps a SearchProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     SearchProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a SearchProvider that limits calls to the given interval.
// Calls block until a token is available to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next SearchProvider, interval time.Duration, logger *slog.Logger) SearchProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Search(ctx context.Context, req SearchRequest) ([]predictions.SearchHit, error) {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		if p.logger != nil {
			p.logger.Warn("rate-limited search canceled", slog.String("provider", "rate-limited"))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	if p.logger != nil {
		p.logger.Debug("rate-limited provider search", slog.String("provider", "rate-limited"), slog.String("query", req.Query))
	}
	return p.next.Search(ctx, req)
}
