package snapshots

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
)

// FSStore loads archived grids from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadGrid reads the grid archived for date (YYYY-MM-DD) from
// {basePath}/grids/{date}.json. A missing file yields ErrNotFound.
func (s *FSStore) LoadGrid(date string) (grid.Grid, error) {
	snap, err := s.LoadSnapshot(date)
	if err != nil {
		return grid.Grid{}, err
	}
	return snap.Grid, nil
}

// LoadSnapshot reads the full archive record for date.
func (s *FSStore) LoadSnapshot(date string) (GridSnapshot, error) {
	if s == nil {
		return GridSnapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return GridSnapshot{}, errors.New("snapshot date required")
	}
	var snap GridSnapshot
	if err := decodeFile(GridSnapshotPath(s.basePath, date), &snap); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return GridSnapshot{}, ErrNotFound
		}
		return GridSnapshot{}, err
	}
	if snap.Date == "" {
		snap.Date = date
	}
	return snap, nil
}

// HasSnapshot reports whether a grid is archived for date.
func (s *FSStore) HasSnapshot(date string) bool {
	if s == nil || s.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(GridSnapshotPath(s.basePath, date))
	return err == nil
}

// Manifest returns the archive manifest, or a default one when none was written yet.
func (s *FSStore) Manifest() (Manifest, error) {
	m, err := readManifest(manifestPath(s.basePath), 0)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	return m, err
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
