// Package catalog owns the published combination index. Rebuilds happen off to the
// side and replace the index wholesale, so readers never observe a partial build.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
)

var (
	// ErrEmptyPool is returned when a rebuild is handed no entities.
	ErrEmptyPool = errors.New("catalog: empty entity pool")
	// ErrNotReady is returned before the first successful build.
	ErrNotReady = errors.New("catalog: no index built yet")
)

// Catalog publishes the current immutable index.
type Catalog struct {
	cfg     grid.Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	buildMu sync.Mutex
	current atomic.Pointer[grid.Index]
	version atomic.Uint64
}

// New creates an empty catalog.
func New(cfg grid.Config, logger *slog.Logger, recorder *metrics.Recorder) *Catalog {
	return &Catalog{cfg: cfg, logger: logger, metrics: recorder}
}

// Rebuild precomputes a new index from pool and publishes it under the next version.
// An empty pool, or a pool yielding no candidates while an index is already published,
// leaves the current index in place.
func (c *Catalog) Rebuild(ctx context.Context, pool []entities.Entity) (*grid.Index, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	built := grid.BuildIndex(pool, c.cfg)
	c.metrics.RecordIndexBuild(built.Len(), built.BuildDuration())

	logger := logging.FromContext(ctx, c.logger)
	if built.Len() == 0 && c.current.Load() != nil {
		logging.Warn(logger, "index rebuild produced no candidates; keeping previous index", nil,
			slog.Int(logging.FieldCount, len(pool)),
		)
		return nil, fmt.Errorf("catalog: rebuild: %w", grid.ErrInsufficientData)
	}

	idx := built.WithVersion(c.version.Add(1))
	c.current.Store(idx)

	logging.Info(logger, "index published",
		slog.Uint64(logging.FieldIndexVersion, idx.Version()),
		slog.Int(logging.FieldCount, len(pool)),
		slog.Int(logging.FieldCandidates, idx.Len()),
		slog.Int64(logging.FieldDurationMS, idx.BuildDuration().Milliseconds()),
	)
	return idx, nil
}

// Load implements the poller sink.
func (c *Catalog) Load(ctx context.Context, pool []entities.Entity) error {
	_, err := c.Rebuild(ctx, pool)
	return err
}

// Current returns the published index, or nil before the first build.
func (c *Catalog) Current() *grid.Index {
	return c.current.Load()
}

// Version returns the version of the published index, or 0.
func (c *Catalog) Version() uint64 {
	if idx := c.current.Load(); idx != nil {
		return idx.Version()
	}
	return 0
}

// Config returns the engine tuning used for builds.
func (c *Catalog) Config() grid.Config {
	return c.cfg
}

// Assembler returns an assembler over the published index.
func (c *Catalog) Assembler(opts ...grid.Option) (*grid.Assembler, error) {
	idx := c.current.Load()
	if idx == nil {
		return nil, ErrNotReady
	}
	return grid.NewAssembler(idx, opts...), nil
}
