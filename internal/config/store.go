package config

import "time"

// Store backend names.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// StoreConfig selects where games are persisted.
type StoreConfig struct {
	Backend  string
	RedisURL string
	Prefix   string
	GameTTL  time.Duration
}

func loadStore() StoreConfig {
	return StoreConfig{
		Backend:  normalizedChoice(envStoreBackend, defaultStoreBackend, StoreMemory, StoreRedis),
		RedisURL: envOrDefault(envRedisURL, ""),
		Prefix:   envOrDefault(envRedisPrefix, defaultRedisPrefix),
		GameTTL:  durationEnvOrDefault(envGameTTL, defaultGameTTL),
	}
}
