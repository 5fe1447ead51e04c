package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers"
)

// GoodProvider returns the provided pool with no error.
type GoodProvider struct {
	Entities []entities.Entity
}

func (p GoodProvider) Name() string { return "good" }

func (p GoodProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	return p.Entities, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) Name() string { return "err" }

func (p ErrProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) Name() string { return "unavailable" }

func (UnavailableProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	return nil, providers.ErrProviderUnavailable
}

// CountingProvider returns its pool and counts loads.
type CountingProvider struct {
	Entities []entities.Entity
	calls    atomic.Int32
}

func (p *CountingProvider) Name() string { return "counting" }

func (p *CountingProvider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	_ = ctx
	p.calls.Add(1)
	return p.Entities, nil
}

// Calls reports how many loads happened.
func (p *CountingProvider) Calls() int { return int(p.calls.Load()) }
