package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
)

// Format names a roster encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromContentType picks the encoding from an HTTP Content-Type, defaulting to JSON.
func FormatFromContentType(contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// envelope is the wrapped roster shape: {"players": [...]} or {"entities": [...]}.
type envelope struct {
	Players  []entities.Record `json:"players" yaml:"players"`
	Entities []entities.Record `json:"entities" yaml:"entities"`
}

// DecodeEntities parses a roster document. The document is either a list of records or
// an object wrapping one under "players" or "entities".
func DecodeEntities(data []byte, format Format) ([]entities.Entity, error) {
	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}
	pool := entities.FromRecords(records)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	return pool, nil
}

func decodeRecords(data []byte, format Format) ([]entities.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPool
	}

	if format == FormatYAML {
		var list []entities.Record
		if err := yaml.Unmarshal(trimmed, &list); err == nil {
			return list, nil
		}
		var env envelope
		if err := yaml.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode yaml roster: %w", err)
		}
		return env.records(), nil
	}

	if trimmed[0] == '[' {
		var list []entities.Record
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode json roster: %w", err)
		}
		return list, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode json roster: %w", err)
	}
	return env.records(), nil
}

func (e envelope) records() []entities.Record {
	if len(e.Players) > 0 {
		return e.Players
	}
	return e.Entities
}
