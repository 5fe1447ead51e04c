package snapshots

import (
	"errors"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
)

// ErrNotFound is returned when no grid is archived for a date.
var ErrNotFound = errors.New("grid snapshot not found")

// GridSnapshot is the on-disk archive record for one date.
type GridSnapshot struct {
	Date        string          `json:"date"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Grid        grid.Grid       `json:"grid"`
	Questions   []grid.Question `json:"questions"`
}
