package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/beto15pr/sports-tally-scraper/internal/http/requestutil"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
)

// WatchlistRunner re-runs the configured watchlist on demand.
type WatchlistRunner interface {
	RunOnce(ctx context.Context) []pipeline.BatchItem
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	watchlist WatchlistRunner
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(watchlist WatchlistRunner, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		watchlist: watchlist,
		token:     token,
		logger:    logger,
	}
}

type refreshEntry struct {
	MatchupID string `json:"matchup_id,omitempty"`
	Query     string `json:"query"`
	RunID     string `json:"run_id,omitempty"`
	Dominant  string `json:"dominant,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RefreshWatchlist re-tallies every watchlist matchup immediately.
// Guarded by the admin bearer token; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshWatchlist(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !requestutil.HasBearerToken(r, h.token) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.watchlist == nil {
		writeError(w, r, http.StatusServiceUnavailable, "watchlist not configured", logger)
		return
	}

	items := h.watchlist.RunOnce(r.Context())
	entries := make([]refreshEntry, 0, len(items))
	failed := 0
	for _, item := range items {
		entry := refreshEntry{MatchupID: item.Matchup.ID, Query: item.Matchup.Query, Error: item.Error}
		if item.Result != nil {
			entry.RunID = item.Result.RunID
			entry.Dominant = item.Result.Dominant
		} else {
			failed++
		}
		entries = append(entries, entry)
	}

	status := "ok"
	if failed > 0 {
		status = "partial"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"matchups": len(items),
		"failed":   failed,
		"results":  entries,
	}, logger)
	logging.Info(logger, "admin watchlist refreshed",
		slog.Int(logging.FieldCount, len(items)),
		slog.Int("failed", failed),
	)
}
