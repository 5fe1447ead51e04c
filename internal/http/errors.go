package http

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/preston-bernstein/trivia-grid-service/internal/http/middleware"
)

func writeStatus(w nethttp.ResponseWriter, r *nethttp.Request, status int, message string) {
	body := map[string]string{"error": message}
	if reqID := middleware.RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
