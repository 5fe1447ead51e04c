package config

import "time"

// Entity provider names.
const (
	ProviderFixture = "fixture"
	ProviderFile    = "file"
	ProviderRemote  = "remote"
)

// ProviderConfig selects and configures the entity source.
type ProviderConfig struct {
	Name      string
	FilePath  string
	RemoteURL string
	APIKey    string
	Timeout   time.Duration

	// MinInterval spaces out calls to the remote source.
	MinInterval   time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

func loadProvider() ProviderConfig {
	return ProviderConfig{
		Name:      normalizedChoice(envProvider, defaultProvider, ProviderFixture, ProviderFile, ProviderRemote),
		FilePath:  envOrDefault(envEntitiesFile, ""),
		RemoteURL: envOrDefault(envRemoteURL, ""),
		APIKey:    envOrDefault(envRemoteAPIKey, ""),
		Timeout:   durationEnvOrDefault(envRemoteTimeout, defaultRemoteTimeout),

		MinInterval:   durationEnvOrDefault(envRemoteInterval, defaultRemoteInterval),
		RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBackoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
	}
}
