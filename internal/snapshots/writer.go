package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

const defaultRetentionDays = 30

var errWriterNotConfigured = errors.New("snapshot writer not configured")

// Writer persists archived grids and the manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteGrid archives g under date (YYYY-MM-DD) and prunes snapshots outside retention.
func (w *Writer) WriteGrid(date string, g grid.Grid) error {
	if w == nil {
		return errWriterNotConfigured
	}
	return w.WriteSnapshot(GridSnapshot{
		Date:        date,
		GeneratedAt: w.clock().UTC(),
		Grid:        g,
		Questions:   g.Questions(),
	})
}

// WriteSnapshot writes a full archive record. Rewriting identical content only
// refreshes the manifest.
func (w *Writer) WriteSnapshot(snap GridSnapshot) error {
	if w == nil {
		return errWriterNotConfigured
	}
	if snap.Date == "" {
		return fmt.Errorf("date required")
	}
	if _, err := timeutil.ParseDate(snap.Date); err != nil {
		return fmt.Errorf("snapshot date %q: %w", snap.Date, err)
	}

	target := GridSnapshotPath(w.basePath, snap.Date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(snap.Date)
	}

	if err := writeFileAtomic(target, data); err != nil {
		return err
	}
	return w.updateManifest(snap.Date)
}

func (w *Writer) clock() time.Time {
	if w == nil || w.now == nil {
		return time.Now()
	}
	return w.now()
}

func (w *Writer) updateManifest(date string) error {
	m, _ := readManifest(manifestPath(w.basePath), w.retentionDays)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	m.Grids.Dates = w.pruneOldSnapshots(dates)
	m.Grids.LastRefreshed = w.clock().UTC()
	m.Retention.GridsDays = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, gridsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// pruneOldSnapshots removes archived dates older than the retention window. Names that
// are not dates are left alone.
func (w *Writer) pruneOldSnapshots(dates []string) []string {
	now := w.clock().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(GridSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
