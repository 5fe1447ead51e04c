package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers"
)

const defaultInterval = 10 * time.Minute

// failureThreshold is the number of consecutive failed reloads after which the
// service reports not ready.
const failureThreshold = 3

// Sink receives every successfully loaded entity pool.
type Sink interface {
	Load(ctx context.Context, pool []entities.Entity) error
}

// Poller reloads the entity pool on an interval and hands it to the sink.
type Poller struct {
	provider providers.EntityProvider
	sink     Sink
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	reload   chan chan error
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the reload loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	Entities            int       `json:"entities"`
}

// IsReady reports whether a pool has been loaded and reloads are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < failureThreshold
}

// New constructs a Poller with sane defaults.
func New(provider providers.EntityProvider, sink Sink, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		sink:     sink,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
		reload:   make(chan chan error),
	}
}

// Start loads the pool once and then reloads until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		_ = p.loadOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				_ = p.loadOnce(ctx)
			case reply := <-p.reload:
				reply <- p.loadOnce(ctx)
			}
		}
	}()
}

// Reload asks the running loop for an immediate reload and waits for its result.
// When the loop is not running the reload happens on the caller's goroutine.
func (p *Poller) Reload(ctx context.Context) error {
	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return p.loadOnce(ctx)
	}

	reply := make(chan error, 1)
	select {
	case p.reload <- reply:
	case <-p.done:
		return p.loadOnce(ctx)
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop halts the reload loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) loadOnce(ctx context.Context) error {
	start := time.Now()
	p.recordAttempt(start)

	pool, err := p.provider.LoadEntities(ctx)
	if err == nil {
		err = p.sink.Load(ctx, pool)
	}
	p.metrics.RecordReload(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "entity reload failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return err
	}

	p.recordSuccess(start, len(pool))
	logging.Info(p.logger, "entity pool reloaded",
		logging.FieldCount, len(pool),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, entities int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Entities = entities
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.EntityProvider {
	return p.provider
}
