package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const manifestVersion = 1

// Manifest lists the archived dates and the retention window they are pruned with.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Grids       GridsMeta `json:"grids"`
}

// Retention is the rolling window, in days, kept on disk.
type Retention struct {
	GridsDays int `json:"gridsDays"`
}

// GridsMeta describes the archived grid files.
type GridsMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:     manifestVersion,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{GridsDays: retentionDays},
		Grids:       GridsMeta{Dates: []string{}},
	}
}

// readManifest decodes the manifest at path. Any failure also yields the default
// manifest so a writer can rebuild it from the files on disk.
func readManifest(path string, retentionDays int) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return defaultManifest(retentionDays), fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if m.Grids.Dates == nil {
		m.Grids.Dates = []string{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.Version = manifestVersion
	m.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(manifestPath(basePath), data)
}

// writeFileAtomic writes through a sibling temp file so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
