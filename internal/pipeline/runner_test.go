package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
	"github.com/beto15pr/sports-tally-scraper/internal/providers/fixture"
)

var testNow = time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC)

func texansNiners() predictions.Matchup {
	return predictions.Matchup{
		ID:    "hou-sf",
		Query: "Texans vs 49ers prediction",
		TeamA: predictions.NewTeamDescriptor("Texans"),
		TeamB: predictions.NewTeamDescriptor("49ers"),
	}
}

func defaults() config.TallyDefaults {
	return config.TallyDefaults{Results: 10, Days: 7, BatchConcurrency: 2}
}

func hits(links ...string) providers.SearchFunc {
	return func(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
		out := make([]predictions.SearchHit, 0, len(links))
		for i, l := range links {
			out = append(out, predictions.SearchHit{Title: "result " + string(rune('a'+i)), Link: l, Snippet: ""})
		}
		return out, nil
	}
}

func pages(byURL map[string]fetch.Page) fetch.FetcherFunc {
	return func(ctx context.Context, url string) (fetch.Page, error) {
		page, ok := byURL[url]
		if !ok {
			return fetch.Page{}, &fetch.StatusError{URL: url, StatusCode: 404}
		}
		return page, nil
	}
}

func newTestRunner(cfg Config) *Runner {
	r := New(cfg)
	r.now = func() time.Time { return testNow }
	r.newID = func() string { return "run-1" }
	return r
}

func published(ago time.Duration) *time.Time {
	t := testNow.Add(-ago)
	return &t
}

func TestRunTalliesFixtureMatchup(t *testing.T) {
	defer goleak.VerifyNone(t)

	fx := fixture.New()
	rec := metrics.NewRecorder()
	r := New(Config{
		Providers:       map[string]providers.SearchProvider{"fixture": fx},
		DefaultProvider: "fixture",
		Fetcher:         fx,
		Defaults:        defaults(),
		Recorder:        rec,
	})

	res, err := r.Run(context.Background(), texansNiners())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := predictions.Tally{VotesA: 1, VotesB: 2, Ambiguous: 1}
	if res.Tally != want {
		t.Fatalf("expected %+v, got %+v", want, res.Tally)
	}
	if res.Dominant != predictions.DominantB {
		t.Fatalf("expected Team B dominant, got %s", res.Dominant)
	}
	if len(res.Sources) != 4 {
		t.Fatalf("expected 4 admitted sources, got %d", len(res.Sources))
	}
	if res.TeamALabel != "Texans" || res.TeamBLabel != "49ers" {
		t.Fatalf("unexpected labels %q/%q", res.TeamALabel, res.TeamBLabel)
	}
	if res.MatchupID != "hou-sf" || res.Days != 7 || res.ResultsRequested != 10 {
		t.Fatalf("unexpected result metadata %+v", res)
	}
	if rec.PageFetches(metrics.OutcomeStale) != 1 {
		t.Fatalf("expected one stale page, got %d", rec.PageFetches(metrics.OutcomeStale))
	}
	if total, failed := rec.TallyRuns(); total != 1 || failed != 0 {
		t.Fatalf("expected one successful run, got total=%d failed=%d", total, failed)
	}
}

func TestRunKeepsSearchOrderAndSkipsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newTestRunner(Config{
		Providers: map[string]providers.SearchProvider{
			"stub": hits(
				"https://one.example.com/a",
				"https://broken.example.com/b",
				"https://two.example.com/c",
				"https://three.example.com/d",
			),
		},
		DefaultProvider: "stub",
		Fetcher: pages(map[string]fetch.Page{
			"https://one.example.com/a":   {Title: "One", Text: "Pick: 49ers", PublishedAt: published(time.Hour)},
			"https://two.example.com/c":   {Title: "Two", Text: "Pick: Texans", PublishedAt: published(2 * time.Hour)},
			"https://three.example.com/d": {Title: "Three", Text: "Nothing useful", PublishedAt: nil},
		}),
		Defaults:    defaults(),
		Concurrency: 3,
	})

	res, err := r.Run(context.Background(), texansNiners())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("expected 2 rows, got %+v", res.Sources)
	}
	if res.Sources[0].Domain != "one.example.com" || res.Sources[1].Domain != "two.example.com" {
		t.Fatalf("expected search order, got %s then %s", res.Sources[0].Domain, res.Sources[1].Domain)
	}
	first := res.Sources[0]
	if first.Winner != predictions.SideB || first.Method != predictions.MethodExplicit {
		t.Fatalf("unexpected first verdict %+v", first)
	}
	if first.Published != "2024-09-12T11:00:00Z" {
		t.Fatalf("unexpected published %q", first.Published)
	}
	if first.ResultTitle != "result a" || first.PageTitle != "One" {
		t.Fatalf("unexpected titles %+v", first)
	}
	if res.Tally != (predictions.Tally{VotesA: 1, VotesB: 1}) || res.Dominant != predictions.DominantTie {
		t.Fatalf("unexpected tally %+v / %s", res.Tally, res.Dominant)
	}
	if !res.GeneratedAt.Equal(testNow) || res.RunID != "run-1" {
		t.Fatalf("unexpected run metadata %+v", res)
	}
}

func TestRunAppliesAllowAndDenyLists(t *testing.T) {
	var fetched sync.Map
	fetcher := fetch.FetcherFunc(func(ctx context.Context, url string) (fetch.Page, error) {
		fetched.Store(url, true)
		return fetch.Page{Text: "Pick: Texans", PublishedAt: published(time.Hour)}, nil
	})
	r := newTestRunner(Config{
		Providers: map[string]providers.SearchProvider{
			"stub": hits(
				"https://www.espn.com/nfl/story",
				"https://www.reddit.com/r/nfl",
				"https://random-blog.net/post",
			),
		},
		DefaultProvider: "stub",
		Fetcher:         fetcher,
		Defaults:        defaults(),
	})

	m := texansNiners()
	m.Allow = []string{"espn.com", "reddit.com"}
	m.Deny = []string{"reddit.com"}
	res, err := r.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Sources) != 1 || res.Sources[0].Domain != "www.espn.com" {
		t.Fatalf("expected only espn to survive, got %+v", res.Sources)
	}
	if res.Sources[0].Site != "espn.com" {
		t.Fatalf("expected registrable site espn.com, got %q", res.Sources[0].Site)
	}
	if _, ok := fetched.Load("https://www.reddit.com/r/nfl"); ok {
		t.Fatalf("denied source should never be fetched")
	}

	m.Allow = []string{}
	m.Deny = []string{}
	res, err = r.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Sources) != 3 {
		t.Fatalf("expected empty lists to admit every source, got %d", len(res.Sources))
	}
}

func TestRunSearchFailureIsReported(t *testing.T) {
	rec := metrics.NewRecorder()
	r := newTestRunner(Config{
		Providers: map[string]providers.SearchProvider{
			"stub": providers.SearchFunc(func(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
				return nil, errors.New("upstream down")
			}),
		},
		DefaultProvider: "stub",
		Fetcher:         pages(nil),
		Defaults:        defaults(),
		Recorder:        rec,
	})

	_, err := r.Run(context.Background(), texansNiners())
	if !IsSearchFailure(err) {
		t.Fatalf("expected search failure, got %v", err)
	}
	if _, failed := rec.TallyRuns(); failed != 1 {
		t.Fatalf("expected failed run recorded, got %d", failed)
	}
}

func TestRunPassesWindowToSearch(t *testing.T) {
	var got providers.SearchRequest
	r := newTestRunner(Config{
		Providers: map[string]providers.SearchProvider{
			"stub": providers.SearchFunc(func(ctx context.Context, req providers.SearchRequest) ([]predictions.SearchHit, error) {
				got = req
				return nil, nil
			}),
		},
		DefaultProvider: "stub",
		Fetcher:         pages(nil),
		Defaults:        defaults(),
	})
	m := texansNiners()
	m.Results = 25
	m.WindowDays = 3
	res, err := r.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Num != 25 || got.TimeRange != "qdr:w" || got.Query != m.Query {
		t.Fatalf("unexpected search request %+v", got)
	}
	if res.Tally != (predictions.Tally{}) || res.Dominant != predictions.DominantTie || len(res.Sources) != 0 {
		t.Fatalf("expected empty tie result, got %+v", res)
	}
}

func TestNormalizeValidation(t *testing.T) {
	r := newTestRunner(Config{
		Providers:       map[string]providers.SearchProvider{"stub": hits()},
		DefaultProvider: "stub",
		Defaults:        defaults(),
	})

	cases := map[string]struct {
		mutate func(*predictions.Matchup)
		field  string
	}{
		"empty query":      {func(m *predictions.Matchup) { m.Query = "  " }, "query"},
		"negative days":    {func(m *predictions.Matchup) { m.WindowDays = -1 }, "days"},
		"negative results": {func(m *predictions.Matchup) { m.Results = -5 }, "results"},
		"unknown provider": {func(m *predictions.Matchup) { m.Provider = "bing" }, "provider"},
	}
	for name, tc := range cases {
		m := texansNiners()
		tc.mutate(&m)
		_, err := r.Normalize(m)
		var v *ValidationError
		if !errors.As(err, &v) || v.Field != tc.field {
			t.Fatalf("%s: expected validation error on %s, got %v", name, tc.field, err)
		}
	}

	m, err := r.Normalize(texansNiners())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.WindowDays != 7 || m.Results != 10 || m.Provider != "stub" {
		t.Fatalf("expected defaults applied, got %+v", m)
	}
}

func TestSinkFailuresDoNotFailRun(t *testing.T) {
	var recorded atomic.Int32
	r := newTestRunner(Config{
		Providers:       map[string]providers.SearchProvider{"stub": hits()},
		DefaultProvider: "stub",
		Fetcher:         pages(nil),
		Defaults:        defaults(),
		Sinks: []Sink{
			{Name: "broken", Record: func(ctx context.Context, res predictions.Result) error {
				return errors.New("disk full")
			}},
			{Name: "counter", Record: func(ctx context.Context, res predictions.Result) error {
				recorded.Add(1)
				return nil
			}},
		},
	})
	if _, err := r.Run(context.Background(), texansNiners()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.Load() != 1 {
		t.Fatalf("expected second sink to run, got %d", recorded.Load())
	}
}

func TestRunCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	r := newTestRunner(Config{
		Providers:       map[string]providers.SearchProvider{"stub": hits("https://a.example.com/x", "https://b.example.com/y")},
		DefaultProvider: "stub",
		Fetcher: fetch.FetcherFunc(func(fctx context.Context, url string) (fetch.Page, error) {
			cancel()
			<-fctx.Done()
			return fetch.Page{}, fctx.Err()
		}),
		Defaults: defaults(),
	})
	_, err := r.Run(ctx, texansNiners())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	fx := fixture.New()
	r := New(Config{
		Providers:       map[string]providers.SearchProvider{"fixture": fx},
		DefaultProvider: "fixture",
		Fetcher:         fx,
		Defaults:        defaults(),
	})

	bad := texansNiners()
	bad.Query = ""
	items := r.RunBatch(context.Background(), []predictions.Matchup{texansNiners(), bad, {
		Query: "Chiefs vs Bills picks",
		TeamA: predictions.NewTeamDescriptor("Chiefs"),
		TeamB: predictions.NewTeamDescriptor("Bills"),
	}})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Result == nil || items[0].Error != "" {
		t.Fatalf("expected first matchup to succeed, got %+v", items[0])
	}
	if items[1].Result != nil || !strings.Contains(items[1].Error, "query") {
		t.Fatalf("expected second matchup to fail validation, got %+v", items[1])
	}
	if items[2].Result == nil || items[2].Result.Query != "Chiefs vs Bills picks" {
		t.Fatalf("expected third matchup result in order, got %+v", items[2])
	}
}
