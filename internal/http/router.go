package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/trivia-grid-service/internal/http/handlers"
	"github.com/preston-bernstein/trivia-grid-service/internal/http/middleware"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
)

// RouterConfig collects everything the router mounts.
type RouterConfig struct {
	Handler    *handlers.Handler
	Grids      *handlers.GridHandler
	Games      *handlers.GameHandler
	Admin      *handlers.AdminHandler
	AdminToken string
	// CreateLimiter throttles game creation per client; nil disables it.
	CreateLimiter *middleware.RateLimiter
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", cfg.Handler.Health)
	r.Get("/ready", cfg.Handler.Ready)
	r.Get("/stats", cfg.Handler.Stats)

	r.Route("/grids", func(r chi.Router) {
		r.Get("/fresh", cfg.Grids.Fresh)
		r.Get("/daily", cfg.Grids.Daily)
	})
	r.Post("/questions/validate", cfg.Grids.ValidateQuestions)

	r.Route("/games", func(r chi.Router) {
		create := nethttp.Handler(nethttp.HandlerFunc(cfg.Games.Create))
		if cfg.CreateLimiter != nil {
			create = cfg.CreateLimiter.Middleware(create)
		}
		r.Method(nethttp.MethodPost, "/", create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Games.Get)
			r.Delete("/", cfg.Games.Delete)
			r.Post("/answers", cfg.Games.Answer)
			r.Post("/end", cfg.Games.End)
		})
	})

	if cfg.Admin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireBearer(cfg.AdminToken))
			r.Post("/reload", cfg.Admin.Reload)
			r.Post("/daily/refresh", cfg.Admin.RefreshDaily)
		})
	}

	r.NotFound(func(w nethttp.ResponseWriter, req *nethttp.Request) {
		writeStatus(w, req, nethttp.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w nethttp.ResponseWriter, req *nethttp.Request) {
		writeStatus(w, req, nethttp.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
