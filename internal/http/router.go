package http

import (
	nethttp "net/http"

	"github.com/beto15pr/sports-tally-scraper/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The admin route is mounted only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/tally", handler.Tally)
	mux.HandleFunc("/tally/batch", handler.TallyBatch)
	mux.HandleFunc("/tallies", handler.ListTallies)
	mux.HandleFunc("/tallies/{id}", handler.TallyByID)
	mux.HandleFunc("/tallies/{id}/csv", handler.TallyCSV)
	if admin != nil {
		mux.HandleFunc("/admin/watchlist/refresh", admin.RefreshWatchlist)
	}
	return mux
}
