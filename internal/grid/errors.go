package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData means the pool yields no usable candidates at all.
	ErrInsufficientData = errors.New("insufficient data to generate a grid")
	// ErrGenerationExhausted means attempts and fallbacks ran out below the acceptance threshold.
	ErrGenerationExhausted = errors.New("grid generation exhausted")
)

// CellFailure describes why one cell of the best grid was invalid.
type CellFailure struct {
	Position CellPosition `json:"position"`
	Row      Header       `json:"row"`
	Col      Header       `json:"col"`
	Reason   string       `json:"reason"`
}

// GenerationError reports a failed assembly with diagnostics from the best grid seen.
type GenerationError struct {
	Attempts   int
	BestValid  int
	Required   int
	Candidates int
	Failures   []CellFailure
	// Cause is set when the context ended the loop early.
	Cause error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("grid generation exhausted after %d attempts: best grid had %d/%d valid cells (need %d)",
		e.Attempts, e.BestValid, CellCount, e.Required)
	if e.Candidates == 0 {
		msg += ": no candidates available"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes ErrGenerationExhausted, ErrInsufficientData when the index is empty,
// and the context error when one stopped generation.
func (e *GenerationError) Unwrap() []error {
	errs := []error{ErrGenerationExhausted}
	if e.Candidates == 0 {
		errs = append(errs, ErrInsufficientData)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
