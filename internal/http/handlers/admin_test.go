package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/poller"
	"github.com/beto15pr/sports-tally-scraper/internal/teststubs"
	"github.com/beto15pr/sports-tally-scraper/internal/testutil"
)

func newWatchlist(refresher *teststubs.StubRefresher) *poller.Poller {
	source := func() ([]predictions.Matchup, error) {
		return []predictions.Matchup{testutil.SampleMatchup("hou-sf")}, nil
	}
	return poller.New(refresher, source, nil, nil, 0)
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	h := NewAdminHandler(newWatchlist(&teststubs.StubRefresher{}), "secret", nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/watchlist/refresh", nil)
	rr := httptest.NewRecorder()

	h.RefreshWatchlist(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	req.Header.Set("Authorization", "Bearer wrong")
	rr = httptest.NewRecorder()
	h.RefreshWatchlist(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong token, got %d", rr.Code)
	}
}

func TestAdminRefreshRunsWatchlist(t *testing.T) {
	refresher := &teststubs.StubRefresher{}
	h := NewAdminHandler(newWatchlist(refresher), "secret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/watchlist/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshWatchlist), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp struct {
		Status   string `json:"status"`
		Matchups int    `json:"matchups"`
		Failed   int    `json:"failed"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Status != "ok" || resp.Matchups != 1 || resp.Failed != 0 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if refresher.Calls.Load() != 1 {
		t.Fatalf("expected one refresh, got %d", refresher.Calls.Load())
	}
}

func TestAdminRefreshReportsPartialFailure(t *testing.T) {
	h := NewAdminHandler(newWatchlist(&teststubs.StubRefresher{Err: "search failed"}), "secret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/watchlist/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshWatchlist), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp struct {
		Status string `json:"status"`
		Failed int    `json:"failed"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Status != "partial" || resp.Failed != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAdminRefreshWithoutWatchlist(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/watchlist/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshWatchlist), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	rr = testutil.Serve(http.HandlerFunc(h.RefreshWatchlist), http.MethodGet, "/admin/watchlist/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
