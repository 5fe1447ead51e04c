package server

import (
	"context"

	"github.com/preston-bernstein/trivia-grid-service/internal/http/handlers"
	"github.com/preston-bernstein/trivia-grid-service/internal/poller"
)

// Poller is the entity reload loop as the server drives it. Reload backs the admin
// reload endpoint.
type Poller interface {
	handlers.Reloader
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}
