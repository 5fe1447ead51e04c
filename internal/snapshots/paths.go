package snapshots

import (
	"fmt"
	"path/filepath"
)

const gridsDir = "grids"

// GridSnapshotPath builds the path to the archived grid for a given date.
func GridSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, gridsDir, fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}
