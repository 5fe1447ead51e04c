package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadGridDefaults(t *testing.T) {
	got := loadGrid()
	want := DefaultGridConfig()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}

func TestLoadGridOverrides(t *testing.T) {
	t.Setenv("GRID_MIN_ANSWERS", "5")
	t.Setenv("GRID_MAX_ATTEMPTS", "20")
	t.Setenv("GRID_TEAM_PAIRS", "true")
	t.Setenv("GRID_EXCLUDED_TEAMS", "Youth,Reserve")
	t.Setenv("GRID_GENERATION_TIMEOUT", "500ms")

	cfg := loadGrid()

	if cfg.MinAnswers != 5 || cfg.MaxAttempts != 20 || !cfg.TeamPairs {
		t.Fatalf("expected overrides, got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ExcludedTeams, []string{"Youth", "Reserve"}) {
		t.Fatalf("expected excluded list, got %v", cfg.ExcludedTeams)
	}
	if cfg.GenerationTimeout != 500*time.Millisecond {
		t.Fatalf("expected 500ms timeout, got %s", cfg.GenerationTimeout)
	}
}

func TestLoadGridMalformedFallsBack(t *testing.T) {
	t.Setenv("GRID_MIN_ANSWERS", "three")

	if cfg := loadGrid(); !reflect.DeepEqual(cfg, DefaultGridConfig()) {
		t.Fatalf("expected defaults on malformed value, got %+v", cfg)
	}
}
