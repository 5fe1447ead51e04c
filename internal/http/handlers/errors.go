package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/catalog"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
)

// statusFor maps service errors onto HTTP status codes and client-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, appgames.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, appgames.ErrGameNotFound):
		return http.StatusNotFound, "game not found"
	case errors.Is(err, appgames.ErrQuestionNotFound):
		return http.StatusNotFound, "question not found"
	case errors.Is(err, daily.ErrNotFound):
		return http.StatusNotFound, "daily grid not found"
	case errors.Is(err, daily.ErrFutureDate):
		return http.StatusNotFound, "daily grid not yet published"
	case errors.Is(err, appgames.ErrGameCompleted),
		errors.Is(err, appgames.ErrQuestionAnswered),
		errors.Is(err, appgames.ErrNotYourTurn):
		return http.StatusConflict, err.Error()
	case errors.Is(err, catalog.ErrNotReady):
		return http.StatusServiceUnavailable, "question index not ready"
	case errors.Is(err, grid.ErrInsufficientData):
		return http.StatusServiceUnavailable, "not enough data to build a grid"
	case errors.Is(err, grid.ErrGenerationExhausted),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "grid generation failed, try again"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeServiceError renders err, attaching the validation report when the gate rejected questions.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	logger = loggerFromContext(r, logger)
	var verr *appgames.ValidationError
	if errors.As(err, &verr) {
		body := errorBody(r, verr.Error())
		body["validation"] = verr.Report
		writeJSON(w, http.StatusUnprocessableEntity, body, logger)
		return
	}
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Warn(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	}
	writeError(w, r, status, msg, logger)
}
