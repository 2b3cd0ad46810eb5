package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/teststubs"
)

func watchlist(matchups ...predictions.Matchup) MatchupSource {
	return func() ([]predictions.Matchup, error) { return matchups, nil }
}

func TestPollerRefreshesWatchlist(t *testing.T) {
	defer goleak.VerifyNone(t)

	refresher := &teststubs.StubRefresher{Notify: make(chan struct{})}
	p := New(refresher, watchlist(predictions.Matchup{ID: "hou-sf", Query: "Texans vs 49ers"}), nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	if refresher.Calls.Load() < 1 {
		t.Fatalf("expected at least one refresh call")
	}
	status := p.Status()
	if !status.IsReady() || status.Matchups != 1 {
		t.Fatalf("expected ready status with one matchup, got %+v", status)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	refresher := &teststubs.StubRefresher{Notify: make(chan struct{})}
	p := New(refresher, watchlist(predictions.Matchup{Query: "a vs b"}), nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := refresher.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if refresher.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional refreshes after stop; before=%d after=%d", callsAfterStop, refresher.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, watchlist(), nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, watchlist(), nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, watchlist(), nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, watchlist(), nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	refresher := &teststubs.StubRefresher{Err: "search via serper failed"}
	rec := metrics.NewRecorder()
	p := New(refresher, watchlist(predictions.Matchup{ID: "m1", Query: "a vs b"}), nil, rec, time.Millisecond)

	items := p.RunOnce(context.Background())
	if len(items) != 1 || items[0].Error == "" {
		t.Fatalf("expected failed item returned, got %+v", items)
	}
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if !strings.Contains(status.LastError, "m1: search via serper failed") {
		t.Fatalf("expected matchup named in last error, got %q", status.LastError)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	refresher.Err = ""
	p.RunOnce(context.Background())
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestPollerSourceErrorIsFailure(t *testing.T) {
	refresher := &teststubs.StubRefresher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := New(refresher, func() ([]predictions.Matchup, error) {
		return nil, errors.New("watchlist missing")
	}, logger, nil, time.Minute)

	p.RunOnce(context.Background())
	if p.Status().LastError != "watchlist missing" {
		t.Fatalf("expected source error recorded, got %q", p.Status().LastError)
	}
	if refresher.Calls.Load() != 0 {
		t.Fatalf("expected no refresh without matchups")
	}
}

func TestPollerUnconfiguredDoesNotPanic(t *testing.T) {
	p := New(nil, nil, nil, nil, time.Minute)
	p.RunOnce(context.Background())
	if p.Status().ConsecutiveFailures != 1 {
		t.Fatalf("expected failure for unconfigured poller")
	}
}

func BenchmarkPollerRunOnce(b *testing.B) {
	p := New(&teststubs.StubRefresher{}, watchlist(predictions.Matchup{Query: "a vs b"}), nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.RunOnce(ctx)
	}
}
