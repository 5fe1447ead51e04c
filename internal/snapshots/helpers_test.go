package snapshots

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
)

func simpleGrid(signature string) grid.Grid {
	g := grid.Grid{Signature: signature, ValidCells: 1}
	g.Rows[0] = grid.Header{Value: "Galatasaray", Dimension: grid.DimensionTeam}
	g.Cols[0] = grid.Header{Value: "Forward", Dimension: grid.DimensionRole}
	g.Cells[0][0] = grid.Cell{
		Row:     g.Rows[0],
		Col:     g.Cols[0],
		Answers: []string{"Hakan Şükür", "Mauro Icardi", "Didier Drogba"},
		Count:   3,
		Valid:   true,
	}
	return g
}

func writeSimpleGrid(t *testing.T, w *Writer, date string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteGrid(date, simpleGrid(date)); err != nil {
		t.Fatalf("failed to write grid %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	path := filepath.Join(w.BasePath(), "grids", date+".json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
