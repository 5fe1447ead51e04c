package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
)

// logWithProvider logs through the request logger when the load was triggered by a
// request (an admin reload), otherwise through logger. Output is tagged with the provider.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, append(args, slog.String(logging.FieldProvider, provider))...)
}
