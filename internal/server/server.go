package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/catalog"
	"github.com/preston-bernstein/trivia-grid-service/internal/config"
	httpserver "github.com/preston-bernstein/trivia-grid-service/internal/http"
	"github.com/preston-bernstein/trivia-grid-service/internal/http/handlers"
	"github.com/preston-bernstein/trivia-grid-service/internal/http/middleware"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/poller"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers"
	"github.com/preston-bernstein/trivia-grid-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

// Server owns every long-running component and their shutdown order.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	catalog       *catalog.Catalog
	games         *appgames.Service
	daily         *daily.Service
	scheduler     *daily.Scheduler
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	storeClose    func() error
}

// New constructs a server with the configured provider, store and telemetry.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(ctx, cfg, logger, nil, nil)
}

// newServerWithProvider wires the server; a non-nil provider or recorder replaces the
// configured one.
func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.EntityProvider, recorder *metrics.Recorder) (*Server, error) {
	engineCfg, err := catalog.EngineConfig(cfg.Grid)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg.Provider)
	} else {
		provider = factory.wrap(provider, cfg.Provider)
	}

	gameStore, storeClose := buildStore(ctx, cfg.Store, logger)
	cat := catalog.New(engineCfg, logger, recorder)
	gameSvc := appgames.NewService(gameStore, cat, appgames.Config{
		MinAnswers:        cfg.Grid.MinAnswers,
		GenerationTimeout: cfg.Grid.GenerationTimeout,
	}, logger, recorder)
	plr := poller.New(provider, cat, logger, recorder, cfg.ReloadInterval)
	dailySvc, scheduler := buildDaily(cfg.Daily, gameSvc, logger)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		catalog:       cat,
		games:         gameSvc,
		daily:         dailySvc,
		scheduler:     scheduler,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		storeClose:    storeClose,
	}
	s.httpServer = buildHTTPServer(cfg, s.routerConfig(cfg))
	return s, nil
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

func buildDaily(cfg config.DailyConfig, gen daily.Generator, logger *slog.Logger) (*daily.Service, *daily.Scheduler) {
	if !cfg.Enabled {
		return nil, nil
	}
	archive := dailyArchive{
		FSStore: snapshots.NewFSStore(cfg.Folder),
		Writer:  snapshots.NewWriter(cfg.Folder, cfg.RetentionDays),
	}
	svc := daily.NewService(archive, gen, logger)
	return svc, daily.NewScheduler(svc, cfg.HourUTC, logger)
}

// dailyArchive joins the snapshot reader and writer into one archive.
type dailyArchive struct {
	*snapshots.FSStore
	*snapshots.Writer
}

func (s *Server) routerConfig(cfg config.Config) httpserver.RouterConfig {
	var statusFn func() poller.Status
	var reloader handlers.Reloader
	if s.poller != nil {
		statusFn = s.poller.Status
		reloader = s.poller
	}
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	return httpserver.RouterConfig{
		Handler:       handlers.NewHandler(s.catalog, s.metrics, logger, statusFn),
		Grids:         handlers.NewGridHandler(s.games, s.daily, logger),
		Games:         handlers.NewGameHandler(s.games, logger),
		Admin:         handlers.NewAdminHandler(reloader, s.catalog, s.daily, logger),
		AdminToken:    cfg.Daily.AdminToken,
		CreateLimiter: limiter,
		Logger:        logger,
		Metrics:       s.metrics,
	}
}

func buildHTTPServer(cfg config.Config, routes httpserver.RouterConfig) httpServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.NewRouter(routes),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the poller, scheduler and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.scheduler != nil {
		go s.scheduler.Run(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.storeClose != nil {
		if err := s.storeClose(); err != nil {
			logging.Warn(s.logger, "game store close failed", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", err)
		}
	}

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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", err)
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
