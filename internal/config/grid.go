package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// GridConfig tunes the question-generation engine.
type GridConfig struct {
	MinAnswers         int     `env:"GRID_MIN_ANSWERS"            envDefault:"3"`
	PreferredMin       int     `env:"GRID_PREFERRED_MIN"          envDefault:"4"`
	PreferredMax       int     `env:"GRID_PREFERRED_MAX"          envDefault:"7"`
	MinValidCells      int     `env:"GRID_MIN_VALID_CELLS"        envDefault:"7"`
	MaxAttempts        int     `env:"GRID_MAX_ATTEMPTS"           envDefault:"50"`
	TeamPairs          bool    `env:"GRID_TEAM_PAIRS"             envDefault:"false"`
	TeamPairMinAnswers int     `env:"GRID_TEAM_PAIR_MIN_ANSWERS"  envDefault:"2"`
	PreferredBias      float64 `env:"GRID_PREFERRED_BIAS"         envDefault:"0.6"`

	// Team lists replace the built-in ones when set. Comma separated.
	ExcludedTeams    []string `env:"GRID_EXCLUDED_TEAMS"     envSeparator:","`
	PreferredTeams   []string `env:"GRID_PREFERRED_TEAMS"    envSeparator:","`
	LowPriorityTeams []string `env:"GRID_LOW_PRIORITY_TEAMS" envSeparator:","`

	// TemplatesFile is an optional YAML or JSON list of fallback templates.
	TemplatesFile string `env:"GRID_TEMPLATES_FILE"`

	GenerationTimeout time.Duration `env:"GRID_GENERATION_TIMEOUT" envDefault:"2s"`
}

// DefaultGridConfig returns the engine defaults.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		MinAnswers:         3,
		PreferredMin:       4,
		PreferredMax:       7,
		MinValidCells:      7,
		MaxAttempts:        50,
		TeamPairMinAnswers: 2,
		PreferredBias:      0.6,
		GenerationTimeout:  2 * time.Second,
	}
}

// loadGrid parses GRID_* variables; a malformed value resets the whole group to defaults.
func loadGrid() GridConfig {
	cfg, err := env.ParseAs[GridConfig]()
	if err != nil {
		return DefaultGridConfig()
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = DefaultGridConfig().GenerationTimeout
	}
	return cfg
}
