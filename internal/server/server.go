package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	httpserver "github.com/beto15pr/sports-tally-scraper/internal/http"
	"github.com/beto15pr/sports-tally-scraper/internal/http/handlers"
	"github.com/beto15pr/sports-tally-scraper/internal/http/middleware"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
	"github.com/beto15pr/sports-tally-scraper/internal/metrics"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/poller"
	"github.com/beto15pr/sports-tally-scraper/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	runner        *pipeline.Runner
	infra         Infra
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with providers, backing services and the watchlist wired from cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	set := BuildProviders(cfg, logger, recorder)
	infra := BuildInfra(context.Background(), cfg, logger, recorder)

	srv := newServerWithProviders(cfg, logger, recorder, set, infra)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv
}

func newServerWithProviders(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, set ProviderSet, infra Infra) *Server {
	memoryStore := store.NewMemoryStore(0)
	snaps := buildSnapshots(cfg)
	runner := BuildRunner(cfg, set, infra, resultSinks(memoryStore, snaps.writer, infra), logger, recorder)

	srv := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		store:   memoryStore,
		runner:  runner,
		infra:   infra,
	}
	watchlist := buildWatchlist(cfg, runner, logger, recorder)
	if watchlist != nil {
		srv.poller = watchlist
	}
	srv.httpServer = buildHTTPServer(cfg, srv, snaps, watchlist)
	return srv
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, s *Server, snaps snapshotComponents, watchlist *poller.Poller) httpServer {
	opts := handlers.Options{Results: s.store}
	if s.infra.History != nil {
		opts.History = s.infra.History
	}
	if snaps.store != nil {
		opts.Snaps = snaps.store
	}
	if s.poller != nil {
		opts.StatusFn = s.poller.Status
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	handler := handlers.NewHandler(s.runner, logger, opts)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		var refresher handlers.WatchlistRunner
		if watchlist != nil {
			refresher = watchlist
		}
		admin = handlers.NewAdminHandler(refresher, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, s.metrics, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the watchlist poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	s.infra.Close(s.logger)

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Runner exposes the tally runner (useful for tests).
func (s *Server) Runner() *pipeline.Runner {
	return s.runner
}
