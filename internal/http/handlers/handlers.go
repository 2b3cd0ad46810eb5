package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/poller"
	"github.com/beto15pr/sports-tally-scraper/internal/report"
	"github.com/beto15pr/sports-tally-scraper/internal/snapshots"
)

const (
	maxBodyBytes     = 1 << 20
	maxBatchMatchups = 25
	defaultListLimit = 20
	maxListLimit     = 200
)

// TallyRunner executes matchups.
type TallyRunner interface {
	Run(ctx context.Context, m predictions.Matchup) (predictions.Result, error)
	RunBatch(ctx context.Context, matchups []predictions.Matchup) []pipeline.BatchItem
}

// ResultStore holds recent results in memory.
type ResultStore interface {
	Get(runID string) (predictions.Result, bool)
	Latest(matchupID string) (predictions.Result, bool)
	List() []predictions.Result
}

// HistoryReader reads persisted runs.
type HistoryReader interface {
	Get(ctx context.Context, runID string) (predictions.Result, bool, error)
	Recent(ctx context.Context, limit int) ([]predictions.Result, error)
}

// Handler wires HTTP routes to the tally pipeline and its result stores.
type Handler struct {
	runner   TallyRunner
	results  ResultStore
	history  HistoryReader
	snaps    snapshots.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// Options carries the optional lookups a Handler falls back to.
type Options struct {
	Results  ResultStore
	History  HistoryReader
	Snaps    snapshots.Store
	StatusFn func() poller.Status
}

// NewHandler constructs a Handler. Nil lookups in opts are skipped.
func NewHandler(runner TallyRunner, logger *slog.Logger, opts Options) *Handler {
	return &Handler{
		runner:   runner,
		results:  opts.Results,
		history:  opts.History,
		snaps:    opts.Snaps,
		logger:   logger,
		statusFn: opts.StatusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a watchlist poller the service is always ready.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Tally runs one matchup and returns its tally with audit rows.
func (h *Handler) Tally(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req TallyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	if len(req.TeamA) == 0 || len(req.TeamB) == 0 {
		writeError(w, r, nethttp.StatusBadRequest, "team_a and team_b are required", logger)
		return
	}

	res, err := h.runner.Run(r.Context(), req.Matchup())
	if err != nil {
		h.writeRunError(w, r, err, logger)
		return
	}
	logging.Info(logger, "tally served",
		logging.FieldRunID, res.RunID,
		logging.FieldQuery, res.Query,
		logging.FieldCount, len(res.Sources),
	)
	writeJSON(w, nethttp.StatusOK, NewTallyResponse(res), logger)
}

// TallyBatch runs several matchups. Individual failures are reported per entry.
func (h *Handler) TallyBatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	if len(req.Matchups) == 0 {
		writeError(w, r, nethttp.StatusBadRequest, "matchups must not be empty", logger)
		return
	}
	if len(req.Matchups) > maxBatchMatchups {
		writeError(w, r, nethttp.StatusBadRequest, fmt.Sprintf("at most %d matchups per batch", maxBatchMatchups), logger)
		return
	}

	matchups := make([]predictions.Matchup, len(req.Matchups))
	for i, m := range req.Matchups {
		matchups[i] = m.Matchup()
	}
	items := h.runner.RunBatch(r.Context(), matchups)

	resp := BatchResponse{
		Results:  make([]BatchEntry, len(items)),
		Dominant: make([]string, len(items)),
	}
	failed := 0
	for i, item := range items {
		entry := BatchEntry{Query: item.Matchup.Query, Error: item.Error}
		if item.Result != nil {
			tr := NewTallyResponse(*item.Result)
			entry.Response = &tr
			resp.Dominant[i] = item.Result.Dominant
		} else {
			failed++
		}
		resp.Results[i] = entry
	}
	logging.Info(logger, "batch served", logging.FieldCount, len(items), "failed", failed)
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// ListTallies returns summaries of recent results, newest first.
func (h *Handler) ListTallies(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxListLimit {
			writeError(w, r, nethttp.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit), logger)
			return
		}
		limit = n
	}

	var results []predictions.Result
	if h.results != nil {
		results = h.results.List()
	}
	if len(results) == 0 && h.history != nil {
		recent, err := h.history.Recent(r.Context(), limit)
		if err != nil {
			logging.Warn(logger, "history lookup failed", "err", err)
		}
		results = recent
	}
	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]TallySummary, 0, len(results))
	for _, res := range results {
		out = append(out, newTallySummary(res))
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"tallies": out}, logger)
}

// TallyByID returns a stored result by run ID, or the latest result for a matchup ID.
func (h *Handler) TallyByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	res, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, NewTallyResponse(res), loggerFromContext(r, h.logger))
}

// TallyCSV renders a stored result's audit rows as CSV.
func (h *Handler) TallyCSV(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	res, ok := h.resolve(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snapshots.SafeID(res.RunID)+".csv"))
	w.WriteHeader(nethttp.StatusOK)
	if err := report.WriteCSV(w, res.Sources); err != nil {
		logging.Warn(logger, "csv write failed", logging.FieldRunID, res.RunID, "err", err)
	}
}

func (h *Handler) resolve(w nethttp.ResponseWriter, r *nethttp.Request) (predictions.Result, bool) {
	logger := loggerFromContext(r, h.logger)
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid tally id", logger)
		return predictions.Result{}, false
	}
	res, ok := h.lookup(r.Context(), id, logger)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "tally not found", logger)
		return predictions.Result{}, false
	}
	return res, true
}

// lookup checks memory, then history, then the latest on-disk snapshot for a matchup ID.
func (h *Handler) lookup(ctx context.Context, id string, logger *slog.Logger) (predictions.Result, bool) {
	if h.results != nil {
		if res, ok := h.results.Get(id); ok {
			return res, true
		}
		if res, ok := h.results.Latest(id); ok {
			return res, true
		}
	}
	if h.history != nil {
		res, ok, err := h.history.Get(ctx, id)
		if err != nil {
			logging.Warn(logger, "history lookup failed", logging.FieldRunID, id, "err", err)
		}
		if ok {
			return res, true
		}
	}
	if h.snaps != nil {
		res, err := h.snaps.LatestTally(id)
		if err == nil {
			logging.Info(logger, "served snapshot tally", logging.FieldMatchupID, id)
			return res, true
		}
		if !errors.Is(err, snapshots.ErrNoSnapshot) {
			logging.Warn(logger, "snapshot lookup failed", logging.FieldMatchupID, id, "err", err)
		}
	}
	return predictions.Result{}, false
}

func (h *Handler) writeRunError(w nethttp.ResponseWriter, r *nethttp.Request, err error, logger *slog.Logger) {
	switch {
	case pipeline.IsValidation(err):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
	case pipeline.IsSearchFailure(err):
		logging.Warn(logger, "tally search failed", "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "search provider failed", logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, nethttp.StatusServiceUnavailable, "request cancelled", logger)
	default:
		logging.Error(logger, "tally failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "tally failed", logger)
	}
}

func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
