package serpapi

import (
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

func mapHits(results []organicResult) []predictions.SearchHit {
	hits := make([]predictions.SearchHit, 0, len(results))
	for _, r := range results {
		link := strings.TrimSpace(r.Link)
		if link == "" {
			continue
		}
		hits = append(hits, predictions.SearchHit{
			Title:   strings.TrimSpace(r.Title),
			Link:    link,
			Snippet: strings.TrimSpace(r.Snippet),
		})
	}
	return hits
}
