package games

import (
	"errors"
	"fmt"

	domaingames "github.com/preston-bernstein/trivia-grid-service/internal/domain/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/validation"
)

var (
	ErrGameNotFound      = domaingames.ErrNotFound
	ErrInvalidRequest    = errors.New("invalid game request")
	ErrGameCompleted     = errors.New("game already completed")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrQuestionAnswered  = errors.New("question already answered")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrQuestionsRejected = errors.New("questions failed validation")
)

// ValidationError carries the full report of a rejected question set.
type ValidationError struct {
	Report validation.Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d of %d questions below %d answers",
		e.Report.Summary.InvalidQuestions, e.Report.Summary.TotalQuestions, e.Report.Summary.MinimumRequired)
}

func (e *ValidationError) Unwrap() error { return ErrQuestionsRejected }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
