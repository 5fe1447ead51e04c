package file

import (
	"context"
	"fmt"
	"os"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/providers"
)

// Name identifies the file source in logs and metrics.
const Name = "file"

// Provider reads the entity pool from a local JSON or YAML roster. The file is re-read
// on every load so edits are picked up by the next reload.
type Provider struct {
	path     string
	readFile func(string) ([]byte, error)
}

// New creates a file provider for path.
func New(path string) *Provider {
	return &Provider{path: path, readFile: os.ReadFile}
}

// Name identifies the provider.
func (p *Provider) Name() string { return Name }

// LoadEntities reads and decodes the roster.
func (p *Provider) LoadEntities(ctx context.Context) ([]entities.Entity, error) {
	if p.path == "" {
		return nil, fmt.Errorf("file provider: no path configured: %w", providers.ErrProviderUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.readFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("file provider: read %s: %w", p.path, err)
	}
	pool, err := providers.DecodeEntities(data, providers.FormatFromPath(p.path))
	if err != nil {
		return nil, fmt.Errorf("file provider: %s: %w", p.path, err)
	}
	return pool, nil
}
