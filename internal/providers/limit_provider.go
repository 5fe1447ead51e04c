package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

const defaultMinInterval = 30 * time.Second

// rateLimitedProvider wraps an EntityProvider and enforces a minimum interval between
// calls so repeated reloads cannot hammer a remote source. The first call is immediate.
type rateLimitedProvider struct {
	next     EntityProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns an EntityProvider that admits one call per interval.
// Calls block until the interval elapses or the context ends.
func NewRateLimitedProvider(next EntityProvider, interval time.Duration, logger *slog.Logger) EntityProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Name() string {
	if p.next == nil {
		return "rate-limited"
	}
	return NameOf(p.next)
}

func (p *rateLimitedProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.Name(), "rate-limited load canceled", slog.Any("err", err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.Name(), "rate-limited provider load")
	return p.next.LoadEntities(ctx)
}
