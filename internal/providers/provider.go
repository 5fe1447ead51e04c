package providers

import (
	"context"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

// EntityProvider loads the full entity pool from a source. Each call returns a fresh
// pool; callers treat the returned slice as immutable.
type EntityProvider interface {
	LoadEntities(ctx context.Context) ([]entities.Entity, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or "provider" when it does not report one.
func NameOf(p EntityProvider) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return "provider"
}
