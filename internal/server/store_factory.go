package server

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/trivia-grid-service/internal/config"
	domaingames "github.com/preston-bernstein/trivia-grid-service/internal/domain/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/store"
)

var newRedisClient = store.NewRedisClient

// buildStore returns the configured game store and a close function. An unreachable
// Redis falls back to the in-memory store so the service still starts.
func buildStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (domaingames.Store, func() error) {
	noop := func() error { return nil }
	if cfg.Backend != config.StoreRedis {
		return store.NewMemoryStore(), noop
	}
	client, err := newRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logging.Warn(logger, "redis unavailable, using in-memory game store", err)
		return store.NewMemoryStore(), noop
	}
	logging.Info(logger, "redis game store connected", slog.String("prefix", cfg.Prefix))
	return store.NewRedisStore(client, cfg.Prefix, cfg.GameTTL), closeRedis(client)
}

func closeRedis(client *redis.Client) func() error {
	return func() error {
		if client == nil {
			return nil
		}
		return client.Close()
	}
}
