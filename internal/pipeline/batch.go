package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// BatchItem is the outcome of one matchup in a batch. Exactly one of
// Result or Error is meaningful.
type BatchItem struct {
	Matchup predictions.Matchup `json:"matchup"`
	Result  *predictions.Result `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// RunBatch runs every matchup with bounded parallelism. One failing matchup
// never aborts the others; items keep the input order.
func (r *Runner) RunBatch(ctx context.Context, matchups []predictions.Matchup) []BatchItem {
	return r.batch(ctx, matchups, r.Run)
}

// RefreshBatch is RunBatch without cache lookups.
func (r *Runner) RefreshBatch(ctx context.Context, matchups []predictions.Matchup) []BatchItem {
	return r.batch(ctx, matchups, r.Refresh)
}

func (r *Runner) batch(ctx context.Context, matchups []predictions.Matchup, run func(context.Context, predictions.Matchup) (predictions.Result, error)) []BatchItem {
	items := make([]BatchItem, len(matchups))
	limit := r.defaults.BatchConcurrency
	if limit <= 0 {
		limit = defaultBatchConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, m := range matchups {
		i, m := i, m
		items[i].Matchup = m
		g.Go(func() error {
			res, err := run(ctx, m)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()
	return items
}
