package providers

import (
	"errors"
	"testing"
)

func TestDecodeEntitiesJSONList(t *testing.T) {
	data := []byte(`[
		{"name": "Gheorghe Hagi", "nationality": "Romania", "teams": "Galatasaray: (1996-2001, Midfielder) | Barcelona: (1994-1996, Midfielder)"},
		{"name": "Ronaldinho", "nationality": "Brazil", "teamHistory": [{"team": "Barcelona", "seasons": [{"year": "2003-2008", "role": "Forward"}]}]},
		{"name": ""}
	]`)

	pool, err := DecodeEntities(data, FormatJSON)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(pool))
	}
	if !pool[0].PlayedFor("Barcelona") || !pool[1].HadRole("Forward") {
		t.Fatalf("unexpected pool %+v", pool)
	}
}

func TestDecodeEntitiesJSONEnvelope(t *testing.T) {
	data := []byte(`{"players": [{"name": "Hakan Şükür", "nationality": "Turkey", "teams": "Galatasaray: (1992-2000, Forward)"}]}`)
	pool, err := DecodeEntities(data, FormatJSON)
	if err != nil || len(pool) != 1 {
		t.Fatalf("expected one entity, got %+v err=%v", pool, err)
	}
}

func TestDecodeEntitiesYAML(t *testing.T) {
	data := []byte(`
entities:
  - name: Wesley Sneijder
    nationality: Netherlands
    teamHistory:
      - team: Galatasaray
        seasons:
          - year: 2013-2017
            role: Midfielder
      - team: Ajax
        seasons:
          - role: Midfielder
`)
	pool, err := DecodeEntities(data, FormatYAML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pool) != 1 || len(pool[0].TeamHistory) != 2 {
		t.Fatalf("unexpected pool %+v", pool)
	}
}

func TestDecodeEntitiesYAMLList(t *testing.T) {
	data := []byte("- name: Didier Drogba\n  nationality: Ivory Coast\n  teams: \"Galatasaray: (2013-2014, Forward)\"\n")
	pool, err := DecodeEntities(data, FormatYAML)
	if err != nil || len(pool) != 1 || !pool[0].PlayedFor("Galatasaray") {
		t.Fatalf("unexpected pool %+v err=%v", pool, err)
	}
}

func TestDecodeEntitiesErrors(t *testing.T) {
	if _, err := DecodeEntities([]byte("  "), FormatJSON); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool for blank document, got %v", err)
	}
	if _, err := DecodeEntities([]byte("[]"), FormatJSON); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool for empty list, got %v", err)
	}
	if _, err := DecodeEntities([]byte("{bad json"), FormatJSON); err == nil || errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFormatSelection(t *testing.T) {
	if FormatFromPath("data/players.YML") != FormatYAML || FormatFromPath("players.json") != FormatJSON || FormatFromPath("players") != FormatJSON {
		t.Fatalf("unexpected path formats")
	}
	if FormatFromContentType("application/x-yaml") != FormatYAML || FormatFromContentType("application/json; charset=utf-8") != FormatJSON {
		t.Fatalf("unexpected content type formats")
	}
}
