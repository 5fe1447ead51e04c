package config

import "strings"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	ReloadInterval Duration
	Log            LogConfig
	Provider       ProviderConfig
	Store          StoreConfig
	Metrics        MetricsConfig
	Daily          DailyConfig
	RateLimit      RateLimitConfig
	Grid           GridConfig
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level   string
	Format  string
	Version string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		ReloadInterval: durationEnvOrDefault(envReloadInterval, defaultReloadInterval),
		Log: LogConfig{
			Level:   envOrDefault(envLogLevel, defaultLogLevel),
			Format:  envOrDefault(envLogFormat, defaultLogFormat),
			Version: envOrDefault(envServiceVersion, "dev"),
		},
		Provider:  loadProvider(),
		Store:     loadStore(),
		Metrics:   loadMetrics(),
		Daily:     loadDaily(),
		RateLimit: loadRateLimit(),
		Grid:      loadGrid(),
	}
}

func normalizedChoice(key, defaultValue string, allowed ...string) string {
	val := strings.ToLower(envOrDefault(key, defaultValue))
	for _, a := range allowed {
		if val == a {
			return val
		}
	}
	return defaultValue
}
