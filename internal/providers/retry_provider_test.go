package providers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    atomic.Int32
}

func (f *flakeyProvider) Name() string { return "flakey" }

func (f *flakeyProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	n := int(f.calls.Add(1))
	if n <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("boom")
	}
	return []entities.Entity{{Name: "ok"}}, nil
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), 3, time.Millisecond)

	pool, err := rp.LoadEntities(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(pool) != 1 || pool[0].Name != "ok" {
		t.Fatalf("unexpected pool %+v", pool)
	}
	if fp.calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls.Load())
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, nil, rec, 2, time.Millisecond)

	if _, err := rp.LoadEntities(context.Background()); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls.Load())
	}
	if rec.ProviderCalls("flakey") != 2 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("expected attempts recorded, got %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderDoesNotRetryPermanentErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: ErrEmptyPool}
	rp := NewRetryingProvider(fp, nil, nil, 3, time.Millisecond)

	_, err := rp.LoadEntities(context.Background())
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if fp.calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls.Load())
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.LoadEntities(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: time.Millisecond}}
	rp := NewRetryingProvider(fp, nil, rec, 2, time.Hour)

	pool, err := rp.LoadEntities(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(pool) != 1 {
		t.Fatalf("unexpected pool %+v", pool)
	}

	snap := rec.Snapshot("flakey")
	if snap.RateLimitHits != 1 || snap.LastRetryAfter != time.Millisecond {
		t.Fatalf("expected rate limit recorded, got %+v", snap)
	}
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("expected 2 calls and 1 error, got %+v", snap)
	}
}

func TestRetryAfterBackOffServesHintOnce(t *testing.T) {
	b := &retryAfterBackOff{next: &backoff.ConstantBackOff{Interval: 5 * time.Millisecond}, hint: time.Second}

	if got := b.NextBackOff(); got != time.Second {
		t.Fatalf("expected hint first, got %s", got)
	}
	if got := b.NextBackOff(); got != 5*time.Millisecond {
		t.Fatalf("expected wrapped policy after hint, got %s", got)
	}
	b.hint = time.Minute
	b.Reset()
	if got := b.NextBackOff(); got != 5*time.Millisecond {
		t.Fatalf("expected reset to clear hint, got %s", got)
	}
}

func TestNewRetryingProviderDefaults(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	exp, ok := rp.newBackOff().(*backoff.ExponentialBackOff)
	if !ok || exp.InitialInterval != defaultBackoff {
		t.Fatalf("expected default exponential backoff, got %+v", rp.newBackOff())
	}
	if _, err := rp.LoadEntities(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
