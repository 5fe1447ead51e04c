package config

// RateLimitConfig bounds how often one client may create games.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

func loadRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Enabled: boolEnvOrDefault(envRateLimitOn, defaultRateLimitOn),
		RPS:     floatEnvOrDefault(envRateLimitRPS, defaultRateLimitRPS),
		Burst:   intEnvOrDefault(envRateLimitBurst, defaultRateLimitBurst),
	}
}
