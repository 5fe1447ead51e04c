package config

import "time"

const (
	envPort           = "PORT"
	envReloadInterval = "RELOAD_INTERVAL"
	envProvider       = "PROVIDER"
	envEntitiesFile   = "ENTITIES_FILE"
	envRemoteURL      = "ENTITIES_URL"
	envRemoteAPIKey   = "ENTITIES_API_KEY"
	envRemoteTimeout  = "ENTITIES_TIMEOUT"
	envRemoteInterval = "ENTITIES_MIN_INTERVAL"
	envRetryAttempts  = "ENTITIES_RETRY_ATTEMPTS"
	envRetryBackoff   = "ENTITIES_RETRY_BACKOFF"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envServiceVersion = "SERVICE_VERSION"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken     = "ADMIN_TOKEN"
	envDailyEnabled   = "DAILY_GRID_ENABLED"
	envDailyFolder    = "DAILY_GRID_FOLDER"
	envDailyRetention = "DAILY_GRID_RETENTION_DAYS"
	envDailyHourUTC   = "DAILY_GRID_HOUR_UTC"
	envStoreBackend   = "STORE_BACKEND"
	envRedisURL       = "REDIS_URL"
	envRedisPrefix    = "REDIS_KEY_PREFIX"
	envGameTTL        = "GAME_TTL"
	envRateLimitOn    = "RATE_LIMIT_ENABLED"
	envRateLimitRPS   = "RATE_LIMIT_RPS"
	envRateLimitBurst = "RATE_LIMIT_BURST"

	defaultPort           = "4000"
	defaultServiceName    = "trivia-grid-service"
	defaultReloadInterval = 10 * Duration(time.Minute)
	defaultProvider       = "fixture"
	defaultRemoteTimeout  = 10 * Duration(time.Second)
	defaultRemoteInterval = 30 * Duration(time.Second)
	defaultRetryAttempts  = 3
	defaultRetryBackoff   = 200 * Duration(time.Millisecond)
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultMetricsPort    = "9090"
	defaultDailyEnabled   = true
	defaultDailyFolder    = "data/snapshots"
	defaultDailyRetention = 30
	defaultDailyHourUTC   = 0
	defaultStoreBackend   = "memory"
	defaultRedisPrefix    = "trivia:"
	// Finished or abandoned games expire from Redis after a day.
	defaultGameTTL        = 24 * Duration(time.Hour)
	defaultRateLimitOn    = true
	defaultRateLimitRPS   = 1.0
	defaultRateLimitBurst = 5
)
