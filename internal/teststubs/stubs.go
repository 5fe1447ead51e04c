package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/snapshots"
)

// ErrSnapshotNotFound is returned by StubArchive for unknown dates.
var ErrSnapshotNotFound = snapshots.ErrNotFound

// StubProvider is a test double for providers.EntityProvider.
type StubProvider struct {
	Entities []entities.Entity
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
}

// LoadEntities returns the configured pool and error while tracking calls.
func (s *StubProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return s.Entities, s.Err
}

// Name identifies the stub in logs and metrics.
func (s *StubProvider) Name() string { return "stub" }

// StubSink records pools handed to it by the poller.
type StubSink struct {
	mu    sync.Mutex
	Pools [][]entities.Entity
	Err   error
}

// Load records the pool and returns the configured error.
func (s *StubSink) Load(ctx context.Context, pool []entities.Entity) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Pools = append(s.Pools, pool)
	return nil
}

// Loaded reports how many pools were accepted.
func (s *StubSink) Loaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Pools)
}

// StubArchive is an in-memory daily grid archive.
type StubArchive struct {
	mu       sync.Mutex
	Grids    map[string]grid.Grid // keyed by date
	LoadErr  error
	WriteErr error
	Writes   int
}

// LoadGrid returns the grid archived for date.
func (s *StubArchive) LoadGrid(date string) (grid.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return grid.Grid{}, s.LoadErr
	}
	g, ok := s.Grids[date]
	if !ok {
		return grid.Grid{}, ErrSnapshotNotFound
	}
	return g, nil
}

// WriteGrid archives g under date.
func (s *StubArchive) WriteGrid(date string, g grid.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if s.Grids == nil {
		s.Grids = make(map[string]grid.Grid)
	}
	s.Grids[date] = g
	s.Writes++
	return nil
}
