// Package pipeline runs a matchup end to end: search, source filtering,
// bounded concurrent fetch and classification, recency filtering and tallying.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/beto15pr/sports-tally-scraper/internal/cache"
	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/engine"
	"github.com/beto15pr/sports-tally-scraper/internal/fetch"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/providers"
	"github.com/beto15pr/sports-tally-scraper/internal/sources"
	"github.com/beto15pr/sports-tally-scraper/internal/timeutil"
)

const (
	defaultConcurrency      = 4
	defaultBatchConcurrency = 2
)

// Sink receives every freshly computed result. Failures are logged, never returned.
type Sink struct {
	Name   string
	Record func(ctx context.Context, res predictions.Result) error
}

// Config wires a Runner.
type Config struct {
	// Providers maps a provider name to its search backend.
	Providers       map[string]providers.SearchProvider
	DefaultProvider string
	// Fetcher retrieves result pages; Fetchers overrides it per provider name.
	Fetcher     fetch.Fetcher
	Fetchers    map[string]fetch.Fetcher
	Classifier  *engine.Classifier
	Defaults    config.TallyDefaults
	Concurrency int
	Cache       *cache.TallyCache
	Sinks       []Sink
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
}

// Runner executes tallies. It is safe for concurrent use.
type Runner struct {
	providers       map[string]providers.SearchProvider
	defaultProvider string
	fetcher         fetch.Fetcher
	fetchers        map[string]fetch.Fetcher
	classifier      *engine.Classifier
	defaults        config.TallyDefaults
	concurrency     int
	cache           *cache.TallyCache
	sinks           []Sink
	logger          *slog.Logger
	recorder        *metrics.Recorder

	now   func() time.Time
	newID func() string
}

// New builds a Runner from cfg.
func New(cfg Config) *Runner {
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = engine.NewClassifier()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	provs := make(map[string]providers.SearchProvider, len(cfg.Providers))
	for name, p := range cfg.Providers {
		provs[strings.ToLower(name)] = p
	}
	fetchers := make(map[string]fetch.Fetcher, len(cfg.Fetchers))
	for name, f := range cfg.Fetchers {
		fetchers[strings.ToLower(name)] = f
	}
	return &Runner{
		providers:       provs,
		defaultProvider: strings.ToLower(cfg.DefaultProvider),
		fetcher:         cfg.Fetcher,
		fetchers:        fetchers,
		classifier:      classifier,
		defaults:        cfg.Defaults,
		concurrency:     concurrency,
		cache:           cfg.Cache,
		sinks:           cfg.Sinks,
		logger:          cfg.Logger,
		recorder:        cfg.Recorder,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// Run tallies m, serving from the cache when an identical matchup was computed recently.
func (r *Runner) Run(ctx context.Context, m predictions.Matchup) (predictions.Result, error) {
	m, err := r.Normalize(m)
	if err != nil {
		return predictions.Result{}, err
	}
	res, hit, err := r.cache.GetOrCompute(ctx, m, func() (predictions.Result, error) {
		return r.execute(ctx, m)
	})
	if err != nil {
		return predictions.Result{}, err
	}
	if hit {
		logging.Info(r.log(ctx), "tally served from cache",
			logging.FieldQuery, m.Query, logging.FieldRunID, res.RunID)
	}
	return res, nil
}

// Refresh tallies m without consulting the cache and stores the fresh result in it.
func (r *Runner) Refresh(ctx context.Context, m predictions.Matchup) (predictions.Result, error) {
	m, err := r.Normalize(m)
	if err != nil {
		return predictions.Result{}, err
	}
	res, err := r.execute(ctx, m)
	if err != nil {
		return predictions.Result{}, err
	}
	r.cache.Store(ctx, m, res)
	return res, nil
}

// Normalize validates m and fills omitted fields from the configured defaults.
// Zero days/results mean "use the default"; negative values are rejected.
func (r *Runner) Normalize(m predictions.Matchup) (predictions.Matchup, error) {
	m.Query = strings.TrimSpace(m.Query)
	if m.Query == "" {
		return m, &ValidationError{Field: "query", Message: "must not be empty"}
	}
	switch {
	case m.WindowDays < 0:
		return m, &ValidationError{Field: "days", Message: "must be positive"}
	case m.WindowDays == 0:
		m.WindowDays = r.defaults.Days
	}
	switch {
	case m.Results < 0:
		return m, &ValidationError{Field: "results", Message: "must be positive"}
	case m.Results == 0:
		m.Results = r.defaults.Results
	}
	if m.WindowDays <= 0 {
		return m, &ValidationError{Field: "days", Message: "no default configured"}
	}
	if m.Results <= 0 {
		return m, &ValidationError{Field: "results", Message: "no default configured"}
	}
	if m.Allow == nil {
		m.Allow = r.defaults.Allow
	}
	if m.Deny == nil {
		m.Deny = r.defaults.Deny
	}
	m.Provider = strings.ToLower(strings.TrimSpace(m.Provider))
	if m.Provider == "" {
		m.Provider = r.defaultProvider
	}
	if _, ok := r.providers[m.Provider]; !ok {
		return m, &ValidationError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", m.Provider)}
	}
	m.TeamA = predictions.NewTeamDescriptor(m.TeamA.Synonyms...)
	m.TeamB = predictions.NewTeamDescriptor(m.TeamB.Synonyms...)
	return m, nil
}

type slot struct {
	row     predictions.SourceRow
	verdict predictions.Verdict
	ok      bool
}

func (r *Runner) execute(ctx context.Context, m predictions.Matchup) (predictions.Result, error) {
	start := time.Now()
	now := r.now().UTC()
	runID := r.newID()
	logger := r.log(ctx).With(
		slog.String(logging.FieldRunID, runID),
		slog.String(logging.FieldQuery, m.Query),
		slog.String(logging.FieldProvider, m.Provider),
	)

	mc := engine.NewMatchupContext(m.TeamA, m.TeamB, m.WindowDays, now)
	if mc.A.CatchAll() {
		logging.Warn(logger, "team A has no synonyms; its patterns match any name", logging.FieldTeam, "A")
	}
	if mc.B.CatchAll() {
		logging.Warn(logger, "team B has no synonyms; its patterns match any name", logging.FieldTeam, "B")
	}

	hits, err := r.providers[m.Provider].Search(ctx, providers.SearchRequest{
		Query:     m.Query,
		Num:       m.Results,
		TimeRange: providers.TimeRangeForDays(m.WindowDays),
	})
	if err != nil {
		r.recorder.RecordTallyRun(m.Provider, time.Since(start), err)
		logging.Error(logger, "search failed", err)
		return predictions.Result{}, &SearchError{Provider: m.Provider, Err: err}
	}

	fetcher := r.fetcherFor(m.Provider)
	if fetcher == nil {
		err := fmt.Errorf("no page fetcher configured for provider %q", m.Provider)
		r.recorder.RecordTallyRun(m.Provider, time.Since(start), err)
		return predictions.Result{}, err
	}

	filter := sources.NewFilter(m.Allow, m.Deny)
	slots := make([]slot, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, hit := range hits {
		host := sources.Host(hit.Link)
		if host == "" || !filter.Allows(host) {
			r.recorder.RecordPageFetch(metrics.OutcomeFiltered, 0)
			continue
		}
		i, hit := i, hit
		g.Go(func() error {
			slots[i] = r.evaluate(gctx, logger, fetcher, mc, hit, host)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		r.recorder.RecordTallyRun(m.Provider, time.Since(start), err)
		return predictions.Result{}, err
	}

	rows := make([]predictions.SourceRow, 0, len(slots))
	verdicts := make([]predictions.Verdict, 0, len(slots))
	for _, s := range slots {
		if !s.ok {
			continue
		}
		rows = append(rows, s.row)
		verdicts = append(verdicts, s.verdict)
	}
	tally := engine.Aggregate(verdicts)

	res := predictions.Result{
		RunID:            runID,
		MatchupID:        m.ID,
		Query:            m.Query,
		TeamALabel:       m.TeamA.Label(),
		TeamBLabel:       m.TeamB.Label(),
		Days:             m.WindowDays,
		ResultsRequested: m.Results,
		Tally:            tally,
		Dominant:         tally.Dominant(),
		Sources:          rows,
		GeneratedAt:      now,
	}

	r.recorder.RecordTallyRun(m.Provider, time.Since(start), nil)
	logging.Info(logger, "tally complete",
		logging.FieldCount, len(rows),
		"votes_a", tally.VotesA,
		"votes_b", tally.VotesB,
		"ambiguous", tally.Ambiguous,
		"dominant", res.Dominant,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)

	r.notify(ctx, logger, res)
	return res, nil
}

func (r *Runner) evaluate(ctx context.Context, logger *slog.Logger, fetcher fetch.Fetcher, mc *engine.MatchupContext, hit predictions.SearchHit, host string) slot {
	fetchStart := time.Now()
	page, err := fetcher.Fetch(ctx, hit.Link)
	if err != nil {
		r.recorder.RecordPageFetch(metrics.OutcomeError, time.Since(fetchStart))
		logging.Warn(logger, "page skipped", logging.FieldURL, hit.Link, "err", err)
		return slot{}
	}

	doc := predictions.Document{
		URL:         hit.Link,
		Domain:      host,
		ResultTitle: hit.Title,
		PageTitle:   page.Title,
		Snippet:     hit.Snippet,
		BodyText:    page.Text,
		PublishedAt: page.PublishedAt,
	}
	verdict, ok := mc.Evaluate(r.classifier, doc)
	if !ok {
		r.recorder.RecordPageFetch(metrics.OutcomeStale, time.Since(fetchStart))
		logging.Debug(logger, "page outside window", logging.FieldURL, hit.Link)
		return slot{}
	}
	r.recorder.RecordPageFetch(metrics.OutcomeOK, time.Since(fetchStart))
	r.recorder.RecordVerdict(string(verdict.Side), string(verdict.Method))

	return slot{
		ok:      true,
		verdict: verdict,
		row: predictions.SourceRow{
			Published:   timeutil.FormatPublished(doc.PublishedAt),
			Domain:      host,
			Site:        sources.Site(host),
			URL:         hit.Link,
			ResultTitle: hit.Title,
			PageTitle:   page.Title,
			Snippet:     hit.Snippet,
			Winner:      verdict.Side,
			Method:      verdict.Method,
			Phrase:      verdict.Phrase,
			Field:       verdict.Field,
		},
	}
}

func (r *Runner) notify(ctx context.Context, logger *slog.Logger, res predictions.Result) {
	for _, sink := range r.sinks {
		if sink.Record == nil {
			continue
		}
		if err := sink.Record(ctx, res); err != nil {
			logging.Warn(logger, "result sink failed", "sink", sink.Name, "err", err)
		}
	}
}

func (r *Runner) fetcherFor(provider string) fetch.Fetcher {
	if f, ok := r.fetchers[provider]; ok && f != nil {
		return f
	}
	return r.fetcher
}

func (r *Runner) log(ctx context.Context) *slog.Logger {
	logger := logging.FromContext(ctx, r.logger)
	if logger == nil {
		logger = slog.Default()
	}
	return logger
}
