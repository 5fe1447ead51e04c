package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/poller"
)

type nowFunc func() time.Time

// IndexSource exposes the published question index.
type IndexSource interface {
	Current() *grid.Index
}

// Handler serves the health and stats routes.
type Handler struct {
	index    IndexSource
	metrics  *metrics.Recorder
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
	started  time.Time
}

// NewHandler constructs a Handler with defaults.
func NewHandler(index IndexSource, recorder *metrics.Recorder, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		index:    index,
		metrics:  recorder,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
		started:  time.Now(),
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: an index is published and reloads are healthy.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.index != nil && h.index.Current() == nil {
		writeError(w, r, http.StatusServiceUnavailable, "question index not built", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// StatsResponse summarizes the index, reload loop and engine counters.
type StatsResponse struct {
	Index         *grid.Stats          `json:"index"`
	Reload        *poller.Status       `json:"reload,omitempty"`
	Engine        metrics.GridSnapshot `json:"engine"`
	UptimeSeconds int64                `json:"uptimeSeconds"`
}

// Stats reports index composition and engine counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Engine:        h.metrics.Grid(),
		UptimeSeconds: int64(h.now().Sub(h.started).Seconds()),
	}
	if h.index != nil {
		if idx := h.index.Current(); idx != nil {
			stats := idx.Stats()
			resp.Index = &stats
		}
	}
	if h.statusFn != nil {
		status := h.statusFn()
		resp.Reload = &status
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}
