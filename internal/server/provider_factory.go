package server

import (
	"log/slog"

	"github.com/preston-bernstein/trivia-grid-service/internal/config"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers/file"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers/fixture"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers/remote"
)

// providerFactory assembles the entity source with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.ProviderConfig) providers.EntityProvider {
	base := f.selectProvider(cfg)
	if cfg.Name == config.ProviderRemote {
		// Keep reloads and admin-triggered reloads within the upstream quota.
		base = providers.NewRateLimitedProvider(base, cfg.MinInterval, f.logger)
	}
	return f.wrap(base, cfg)
}

func (f providerFactory) wrap(base providers.EntityProvider, cfg config.ProviderConfig) providers.EntityProvider {
	return providers.NewRetryingProvider(base, f.logger, f.metrics, cfg.RetryAttempts, cfg.RetryBackoff)
}

func (f providerFactory) selectProvider(cfg config.ProviderConfig) providers.EntityProvider {
	switch cfg.Name {
	case config.ProviderFile:
		return file.New(cfg.FilePath)
	case config.ProviderRemote:
		return remote.NewClient(remote.Config{
			URL:     cfg.RemoteURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	case config.ProviderFixture, "":
		return fixture.New()
	default:
		if f.logger != nil {
			f.logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Name))
		}
		return fixture.New()
	}
}
