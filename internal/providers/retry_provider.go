package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoffFactor     = 20
)

// retryingProvider wraps an EntityProvider with exponential backoff, honoring
// Retry-After hints from rate limited sources.
type retryingProvider struct {
	inner        EntityProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner EntityProvider, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, initial time.Duration) EntityProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	name := "provider"
	if inner != nil {
		name = NameOf(inner)
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = initial * maxBackoffFactor
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) Name() string { return r.providerName }

func (r *retryingProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	hinted := &retryAfterBackOff{next: r.newBackOff()}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	operation := func() ([]entities.Entity, error) {
		attempt++
		start := time.Now()
		pool, err := r.inner.LoadEntities(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return pool, nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			hinted.hint = rlErr.RetryAfter
		}
		if isPermanent(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "entity load retry",
			slog.Int(logging.FieldAttempts, attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	pool, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		r.logWarn(ctx, "entity load failed", slog.Int(logging.FieldAttempts, attempt), slog.Any("err", err))
		return nil, err
	}
	return pool, nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, msg, args...)
}

// retryAfterBackOff serves a one-shot Retry-After hint before falling back to the
// wrapped policy.
type retryAfterBackOff struct {
	next backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	if b.hint > 0 {
		d := b.hint
		b.hint = 0
		return d
	}
	return b.next.NextBackOff()
}

func (b *retryAfterBackOff) Reset() {
	b.hint = 0
	b.next.Reset()
}
