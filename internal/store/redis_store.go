package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domaingames "github.com/preston-bernstein/trivia-grid-service/internal/domain/games"
)

const (
	defaultPrefix = "trivia:"
	dialTimeout   = 3 * time.Second
	readTimeout   = 2 * time.Second
	writeTimeout  = 2 * time.Second
	pingTimeout   = 2 * time.Second
)

// redisCmdable is the subset of the go-redis client the store uses.
type redisCmdable interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps each game as a JSON document under "<prefix>game:<id>" with a TTL.
type RedisStore struct {
	client redisCmdable
	prefix string
	ttl    time.Duration
}

// NewRedisClient parses a Redis URL and returns a client that has answered a ping.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return client, nil
}

// NewRedisStore wraps a connected client. A ttl of zero keeps games forever.
func NewRedisStore(client redisCmdable, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + "game:" + id
}

// SaveGame writes the game document and refreshes its TTL.
func (s *RedisStore) SaveGame(ctx context.Context, game domaingames.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("redis: encode game %s: %w", game.ID, err)
	}
	if err := s.client.Set(ctx, s.key(game.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save game %s: %w", game.ID, err)
	}
	return nil
}

// GetGame loads a game document.
func (s *RedisStore) GetGame(ctx context.Context, id string) (domaingames.Game, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("redis: get game %s: %w", id, err)
	}
	var game domaingames.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return domaingames.Game{}, fmt.Errorf("redis: decode game %s: %w", id, err)
	}
	return game, nil
}

// DeleteGame removes a game document.
func (s *RedisStore) DeleteGame(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis: delete game %s: %w", id, err)
	}
	if removed == 0 {
		return domaingames.ErrNotFound
	}
	return nil
}
