package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.ReloadInterval != defaultReloadInterval {
		t.Fatalf("expected default reload interval %s, got %s", defaultReloadInterval, cfg.ReloadInterval)
	}
	if cfg.Provider.Name != ProviderFixture {
		t.Fatalf("expected default provider %s, got %s", ProviderFixture, cfg.Provider.Name)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Fatalf("expected memory store by default, got %s", cfg.Store.Backend)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if cfg.Daily.Folder != defaultDailyFolder || cfg.Daily.RetentionDays != defaultDailyRetention {
		t.Fatalf("unexpected daily defaults %+v", cfg.Daily)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Burst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envReloadInterval, "45s")
	t.Setenv(envProvider, "Remote")
	t.Setenv(envRemoteURL, "http://example.com/players.json")
	t.Setenv(envRemoteAPIKey, "secret-key")
	t.Setenv(envStoreBackend, "redis")
	t.Setenv(envRedisURL, "redis://localhost:6379/0")
	t.Setenv(envRateLimitRPS, "2.5")
	t.Setenv(envAdminToken, "admin")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.ReloadInterval != 45*time.Second {
		t.Fatalf("expected reload interval 45s, got %s", cfg.ReloadInterval)
	}
	if cfg.Provider.Name != ProviderRemote {
		t.Fatalf("expected remote provider, got %s", cfg.Provider.Name)
	}
	if cfg.Provider.RemoteURL != "http://example.com/players.json" || cfg.Provider.APIKey != "secret-key" {
		t.Fatalf("expected remote overrides, got %+v", cfg.Provider)
	}
	if cfg.Store.Backend != StoreRedis || cfg.Store.RedisURL == "" {
		t.Fatalf("expected redis store, got %+v", cfg.Store)
	}
	if cfg.RateLimit.RPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.RateLimit.RPS)
	}
	if cfg.Daily.AdminToken != "admin" {
		t.Fatalf("expected admin token override")
	}
}

func TestLoadUnknownChoicesFallBack(t *testing.T) {
	t.Setenv(envProvider, "sportsdb")
	t.Setenv(envStoreBackend, "postgres")

	cfg := Load()

	if cfg.Provider.Name != defaultProvider {
		t.Fatalf("expected default provider on unknown value, got %s", cfg.Provider.Name)
	}
	if cfg.Store.Backend != defaultStoreBackend {
		t.Fatalf("expected default store on unknown value, got %s", cfg.Store.Backend)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envReloadInterval, "not-a-duration")

	if cfg := Load(); cfg.ReloadInterval != defaultReloadInterval {
		t.Fatalf("expected default reload interval on invalid value, got %s", cfg.ReloadInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envReloadInterval, "0s")

	if cfg := Load(); cfg.ReloadInterval != defaultReloadInterval {
		t.Fatalf("expected default reload interval on non-positive value, got %s", cfg.ReloadInterval)
	}
}

func TestLoadDailyHourOutOfRangeFallsBack(t *testing.T) {
	t.Setenv(envDailyHourUTC, "25")
	if got := Load().Daily.HourUTC; got != defaultDailyHourUTC {
		t.Fatalf("expected default hour on out-of-range value, got %d", got)
	}
	t.Setenv(envDailyHourUTC, "6")
	if got := Load().Daily.HourUTC; got != 6 {
		t.Fatalf("expected hour 6, got %d", got)
	}
}

func TestLoadMetricsNormalizesOtlpEndpoint(t *testing.T) {
	cases := []struct {
		raw          string
		insecureEnv  string
		wantEndpoint string
		wantInsecure bool
	}{
		{"collector:4318", "false", "collector:4318", false},
		{"http://collector:4318/", "false", "collector:4318", true},
		{"https://otel.example.com", "false", "otel.example.com", false},
		{"", "", "", true},
	}
	for _, tc := range cases {
		t.Setenv(envOtelEndpoint, tc.raw)
		t.Setenv(envOtelInsecure, tc.insecureEnv)

		cfg := Load().Metrics
		if cfg.OtlpEndpoint != tc.wantEndpoint || cfg.OtlpInsecure != tc.wantInsecure {
			t.Fatalf("endpoint %q: got %q insecure=%v, want %q insecure=%v",
				tc.raw, cfg.OtlpEndpoint, cfg.OtlpInsecure, tc.wantEndpoint, tc.wantInsecure)
		}
	}
}
