package config

import "strings"

// MetricsConfig controls the Prometheus endpoint and optional OTLP export.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string // host:port, without scheme
	ServiceName  string
	OtlpInsecure bool
}

// loadMetrics reads telemetry settings. An OTLP endpoint given as a URL is reduced to
// host:port; an http:// scheme also forces an insecure exporter.
func loadMetrics() MetricsConfig {
	cfg := MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
	endpoint := strings.TrimSpace(envOrDefault(envOtelEndpoint, ""))
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
		cfg.OtlpInsecure = true
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
	}
	cfg.OtlpEndpoint = strings.TrimRight(endpoint, "/")
	return cfg
}
