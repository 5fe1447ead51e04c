package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
)

// EndRequest optionally names the winner of a multiplayer game.
type EndRequest struct {
	WinnerID string `json:"winnerId"`
}

// GameHandler serves the game lifecycle routes.
type GameHandler struct {
	svc    *appgames.Service
	logger *slog.Logger
}

// NewGameHandler constructs a GameHandler.
func NewGameHandler(svc *appgames.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{svc: svc, logger: logger}
}

// Create starts a game from generated or supplied questions.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req appgames.CreateRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	game, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "game created",
		slog.String(logging.FieldGameID, game.ID),
		slog.String("mode", string(game.GameMode)),
		slog.Int(logging.FieldCount, game.TotalQuestions),
	)
	writeJSON(w, http.StatusCreated, game, h.logger)
}

// Get returns a game by id.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r, h.logger)
	if !ok {
		return
	}
	game, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// Delete removes a game.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Answer submits a guess for one question.
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r, h.logger)
	if !ok {
		return
	}
	var req appgames.AnswerRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	result, err := h.svc.SubmitAnswer(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// End completes a game early, optionally naming the winner.
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r, h.logger)
	if !ok {
		return
	}
	var req EndRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	game, err := h.svc.End(r.Context(), id, strings.TrimSpace(req.WinnerID))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

func gameID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid game id", logger)
		return "", false
	}
	return id, true
}
