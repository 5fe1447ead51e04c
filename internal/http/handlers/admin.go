package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

// Reloader triggers an immediate entity pool reload.
type Reloader interface {
	Reload(ctx context.Context) error
}

// VersionSource reports the published index version.
type VersionSource interface {
	Version() uint64
}

// AdminHandler exposes admin-only endpoints. Authorization is enforced by the router.
type AdminHandler struct {
	reloader Reloader
	versions VersionSource
	daily    *daily.Service
	logger   *slog.Logger
	now      nowFunc
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(reloader Reloader, versions VersionSource, dailySvc *daily.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reloader: reloader,
		versions: versions,
		daily:    dailySvc,
		logger:   logger,
		now:      time.Now,
	}
}

// Reload reloads the entity pool and rebuilds the index.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "reload not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	start := time.Now()
	if err := h.reloader.Reload(r.Context()); err != nil {
		logging.Warn(logger, "admin reload failed", err)
		writeError(w, r, http.StatusBadGateway, "reload failed: "+err.Error(), logger)
		return
	}
	var version uint64
	if h.versions != nil {
		version = h.versions.Version()
	}
	logging.Info(logger, "admin reload complete",
		slog.Uint64(logging.FieldIndexVersion, version),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"indexVersion": version,
	}, logger)
}

// RefreshDaily regenerates the daily grid for ?date= (defaults to today).
func (h *AdminHandler) RefreshDaily(w http.ResponseWriter, r *http.Request) {
	if h.daily == nil {
		writeError(w, r, http.StatusServiceUnavailable, "daily grid disabled", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, err := timeutil.NormalizeDate(strings.TrimSpace(r.URL.Query().Get("date")), h.now())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	g, err := h.daily.Refresh(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "admin daily refresh", slog.String(logging.FieldDate, date))
	writeJSON(w, http.StatusOK, newGridResponse(date, g), logger)
}
