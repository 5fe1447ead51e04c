package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/trivia-grid-service/internal/config"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
)

// EngineConfig maps runtime configuration onto engine tuning. Team lists left empty keep
// the built-in defaults; a templates file replaces the built-in fallback templates.
func EngineConfig(cfg config.GridConfig) (grid.Config, error) {
	out := grid.DefaultConfig()
	out.MinAnswers = cfg.MinAnswers
	out.PreferredMin = cfg.PreferredMin
	out.PreferredMax = cfg.PreferredMax
	out.MinValidCells = cfg.MinValidCells
	out.MaxAttempts = cfg.MaxAttempts
	out.TeamPairs = cfg.TeamPairs
	out.TeamPairMinAnswers = cfg.TeamPairMinAnswers
	out.PreferredBias = cfg.PreferredBias

	if len(cfg.ExcludedTeams) > 0 {
		out.Policy.Excluded = cfg.ExcludedTeams
	}
	if len(cfg.PreferredTeams) > 0 {
		out.Policy.Preferred = cfg.PreferredTeams
	}
	if len(cfg.LowPriorityTeams) > 0 {
		out.Policy.LowPriority = cfg.LowPriorityTeams
	}

	if cfg.TemplatesFile != "" {
		templates, err := LoadTemplates(cfg.TemplatesFile)
		if err != nil {
			return grid.Config{}, err
		}
		out.Fallbacks = templates
	}
	return out, nil
}

// LoadTemplates reads a YAML (or JSON) list of fallback templates.
func LoadTemplates(path string) ([]grid.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read templates %s: %w", path, err)
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes a template list and checks every header names a known dimension.
func ParseTemplates(data []byte) ([]grid.Template, error) {
	var templates []grid.Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("catalog: decode templates: %w", err)
	}
	for i, t := range templates {
		for _, h := range append(t.Rows[:], t.Cols[:]...) {
			if h.Value == "" || !h.Dimension.Valid() {
				return nil, fmt.Errorf("catalog: template %d (%q): invalid header %+v", i, t.Name, h)
			}
		}
	}
	return templates, nil
}
