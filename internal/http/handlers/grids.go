package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

// GridResponse is a generated grid together with its question list.
type GridResponse struct {
	Date      string          `json:"date,omitempty"`
	Grid      grid.Grid       `json:"grid"`
	Questions []grid.Question `json:"questions"`
}

func newGridResponse(date string, g grid.Grid) GridResponse {
	return GridResponse{Date: date, Grid: g, Questions: g.Questions()}
}

// ValidateRequest carries questions to check against the minimum-answer rule.
type ValidateRequest struct {
	Questions []grid.Question `json:"questions"`
}

// GridHandler serves grid generation, the daily grid and question validation.
type GridHandler struct {
	games  *appgames.Service
	daily  *daily.Service
	logger *slog.Logger
	now    nowFunc
}

// NewGridHandler constructs a GridHandler. The daily service is optional.
func NewGridHandler(games *appgames.Service, dailySvc *daily.Service, logger *slog.Logger) *GridHandler {
	return &GridHandler{games: games, daily: dailySvc, logger: logger, now: time.Now}
}

// Fresh generates a new grid; ?previous=<signature> avoids repeating that grid.
func (h *GridHandler) Fresh(w http.ResponseWriter, r *http.Request) {
	previous := strings.TrimSpace(r.URL.Query().Get("previous"))
	g, err := h.games.Generate(r.Context(), previous)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, newGridResponse("", g), h.logger)
}

// Daily serves the archived grid for ?date=YYYY-MM-DD, defaulting to today.
func (h *GridHandler) Daily(w http.ResponseWriter, r *http.Request) {
	if h.daily == nil {
		writeError(w, r, http.StatusNotFound, "daily grid disabled", h.logger)
		return
	}
	date, err := timeutil.NormalizeDate(strings.TrimSpace(r.URL.Query().Get("date")), h.now())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	g, err := h.daily.Get(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served daily grid", slog.String(logging.FieldDate, date))
	writeJSON(w, http.StatusOK, newGridResponse(date, g), h.logger)
}

// ValidateQuestions runs the validation gate and returns the full report.
func (h *GridHandler) ValidateQuestions(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.games.Validate(req.Questions), h.logger)
}
