// Package fixture serves deterministic search hits and pages for offline runs.
package fixture

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

// Host serves every fixture link. Allow lists must include it for fixture hits to survive filtering.
const Host = "fixture.example.com"

const (
	baseURL      = "https://" + Host + "/"
	fallbackHome = "Home Team"
	fallbackAway = "Away Team"
)

var matchupPattern = regexp.MustCompile(`(?i)^\s*(.+?)\s+(?:vs\.?|versus|v\.?|at|@)\s+(.+?)(?:\s+(?:prediction|predictions|picks?|odds|preview)\b.*)?\s*$`)

type article struct {
	slug    string
	title   string
	snippet string
	body    string
	age     time.Duration
}

// Provider returns a fixed set of hits for any query and serves the matching
// pages through Fetch, so a full tally can run without network access.
type Provider struct {
	now func() time.Time

	mu    sync.RWMutex
	pages map[string]fetch.Page
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now:   time.Now,
		pages: make(map[string]fetch.Page),
	}
}

// Search returns up to req.Num deterministic hits built from the teams named in the query.
func (p *Provider) Search(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
	_ = ctx
	home, away := SplitMatchup(req.Query)
	now := p.now().UTC()

	articles := []article{
		{
			slug:    "final-score",
			title:   fmt.Sprintf("%s vs %s recap", home, away),
			snippet: fmt.Sprintf("Final score: %s 27, %s 20.", away, home),
			body:    fmt.Sprintf("%s closed strong.\nFinal score: %s 27, %s 20.", away, away, home),
			age:     6 * time.Hour,
		},
		{
			slug:    "expert-pick",
			title:   fmt.Sprintf("%s vs %s prediction", home, away),
			snippet: fmt.Sprintf("Our experts break down %s at %s.", away, home),
			body:    fmt.Sprintf("Pick: %s\nThe defense travels well.", home),
			age:     26 * time.Hour,
		},
		{
			slug:    "spread-pick",
			title:   fmt.Sprintf("%s vs %s odds", home, away),
			snippet: fmt.Sprintf("Pick: %s -2.5 over %s", home, away),
			body:    "Best bets for the weekend slate.",
			age:     30 * time.Hour,
		},
		{
			slug:    "projected-score",
			title:   fmt.Sprintf("%s vs %s model projection", home, away),
			snippet: "Simulated 10,000 times.",
			body:    fmt.Sprintf("Projected: %s 24, %s 21", away, home),
			age:     50 * time.Hour,
		},
		{
			slug:    "archive",
			title:   fmt.Sprintf("%s vs %s last season", home, away),
			snippet: fmt.Sprintf("Winner: %s", home),
			body:    "From the archive.",
			age:     40 * 24 * time.Hour,
		},
	}

	limit := req.Num
	if limit <= 0 || limit > len(articles) {
		limit = len(articles)
	}

	hits := make([]predictions.SearchHit, 0, limit)
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range articles[:limit] {
		link := baseURL + slugify(home) + "-" + slugify(away) + "/" + a.slug
		published := now.Add(-a.age)
		p.pages[link] = fetch.Page{
			URL:         link,
			Title:       a.title,
			Text:        a.body,
			PublishedAt: &published,
		}
		hits = append(hits, predictions.SearchHit{Title: a.title, Link: link, Snippet: a.snippet})
	}
	return hits, nil
}

// Fetch serves a page previously produced by Search.
func (p *Provider) Fetch(ctx context.Context, link string) (fetch.Page, error) {
	if err := ctx.Err(); err != nil {
		return fetch.Page{}, err
	}
	p.mu.RLock()
	page, ok := p.pages[link]
	p.mu.RUnlock()
	if !ok {
		return fetch.Page{}, &fetch.StatusError{URL: link, StatusCode: 404}
	}
	return page, nil
}

// SplitMatchup extracts the two team names from queries like "Texans vs 49ers prediction".
func SplitMatchup(query string) (string, string) {
	m := matchupPattern.FindStringSubmatch(query)
	if m == nil {
		return fallbackHome, fallbackAway
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func slugify(s string) string {
	return url.PathEscape(strings.ToLower(strings.Join(strings.Fields(s), "-")))
}
