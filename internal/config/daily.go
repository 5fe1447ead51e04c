package config

// DailyConfig controls the archived grid-of-the-day.
type DailyConfig struct {
	Enabled       bool
	Folder        string // base path for grid snapshots
	RetentionDays int
	HourUTC       int    // hour at which tomorrow's grid is ensured
	AdminToken    string // guards the admin refresh and reload endpoints
}

func loadDaily() DailyConfig {
	hour := intEnvOrDefault(envDailyHourUTC, defaultDailyHourUTC)
	if hour < 0 || hour > 23 {
		hour = defaultDailyHourUTC
	}
	return DailyConfig{
		Enabled:       boolEnvOrDefault(envDailyEnabled, defaultDailyEnabled),
		Folder:        envOrDefault(envDailyFolder, defaultDailyFolder),
		RetentionDays: intEnvOrDefault(envDailyRetention, defaultDailyRetention),
		HourUTC:       hour,
		AdminToken:    envOrDefault(envAdminToken, ""),
	}
}
