package grid

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Size is the number of rows and columns in a grid.
const Size = 3

// CellCount is the number of cells in a grid.
const CellCount = Size * Size

// Cell failure reasons.
const (
	ReasonDegeneratePairing = "degenerate pairing"
	ReasonNoCombination     = "no matching combination"
	ReasonBelowMinimum      = "below minimum answers"
)

// Cell is one resolved (row, col) intersection. Invalid cells carry no answers.
type Cell struct {
	Row        Header     `json:"row"`
	Col        Header     `json:"col"`
	Answers    []string   `json:"answers"`
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Kind       Kind       `json:"questionType,omitempty"`
	Valid      bool       `json:"valid"`
	Reason     string     `json:"reason,omitempty"`
}

// Grid is an assembled 3x3 puzzle.
type Grid struct {
	Rows         [Size]Header     `json:"rows"`
	Cols         [Size]Header     `json:"cols"`
	Cells        [Size][Size]Cell `json:"cells"`
	ValidCells   int              `json:"validCells"`
	Attempts     int              `json:"attempts"`
	Fallback     bool             `json:"fallback"`
	IndexVersion uint64           `json:"indexVersion"`
	Signature    string           `json:"signature"`
}

// CellPosition locates a question within the grid.
type CellPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Question is the serialized form of a valid grid cell.
type Question struct {
	QuestionNumber int          `json:"questionNumber"`
	RowFeature     string       `json:"rowFeature"`
	RowFeatureType Dimension    `json:"rowFeatureType"`
	ColFeature     string       `json:"colFeature"`
	ColFeatureType Dimension    `json:"colFeatureType"`
	CorrectAnswers []string     `json:"correctAnswers"`
	CellPosition   CellPosition `json:"cellPosition"`
	Difficulty     Difficulty   `json:"difficulty,omitempty"`
	AnswerCount    int          `json:"answerCount"`
	QuestionType   Kind         `json:"questionType,omitempty"`
}

// Questions returns the valid cells in row-major order, numbered from 1.
func (g Grid) Questions() []Question {
	questions := make([]Question, 0, g.ValidCells)
	number := 1
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := g.Cells[r][c]
			if !cell.Valid {
				continue
			}
			questions = append(questions, Question{
				QuestionNumber: number,
				RowFeature:     cell.Row.Value,
				RowFeatureType: cell.Row.Dimension,
				ColFeature:     cell.Col.Value,
				ColFeatureType: cell.Col.Dimension,
				CorrectAnswers: append([]string(nil), cell.Answers...),
				CellPosition:   CellPosition{Row: r, Col: c},
				Difficulty:     cell.Difficulty,
				AnswerCount:    cell.Count,
				QuestionType:   cell.Kind,
			})
			number++
		}
	}
	return questions
}

// Headers returns the six row and column headers.
func (g Grid) Headers() []Header {
	out := make([]Header, 0, 2*Size)
	out = append(out, g.Rows[:]...)
	return append(out, g.Cols[:]...)
}

// Failures lists the invalid cells and why they failed.
func (g Grid) Failures() []CellFailure {
	var out []CellFailure
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := g.Cells[r][c]
			if cell.Valid {
				continue
			}
			out = append(out, CellFailure{
				Position: CellPosition{Row: r, Col: c},
				Row:      cell.Row,
				Col:      cell.Col,
				Reason:   cell.Reason,
			})
		}
	}
	return out
}

// computeSignature hashes the nine header pairs. Two grids with the same signature
// ask the same questions in the same cells.
func computeSignature(rows, cols [Size]Header) string {
	d := xxhash.New()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			_, _ = d.WriteString(string(rows[r].Dimension))
			_, _ = d.WriteString("\x00")
			_, _ = d.WriteString(rows[r].Value)
			_, _ = d.WriteString("\x00")
			_, _ = d.WriteString(string(cols[c].Dimension))
			_, _ = d.WriteString("\x00")
			_, _ = d.WriteString(cols[c].Value)
			_, _ = d.WriteString("\x01")
		}
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
