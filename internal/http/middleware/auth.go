package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/trivia-grid-service/internal/http/requestutil"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
)

// RequireBearer admits only requests carrying token as a bearer credential. An empty
// token locks the route.
func RequireBearer(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := requestutil.BearerToken(r)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logging.Warn(logging.FromContext(r.Context(), nil), "admin unauthorized", nil,
					slog.String(logging.FieldPath, r.URL.Path),
					slog.String(logging.FieldRemoteIP, requestutil.ClientIP(r)),
				)
				writeError(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
