package games

import (
	"context"
	"errors"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
)

// ErrNotFound is returned by stores when no game has the requested id.
var ErrNotFound = errors.New("game not found")

// Status is the lifecycle state of a game.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Mode selects single-player or two-player turn-based play.
type Mode string

const (
	ModeSingle      Mode = "single"
	ModeMultiplayer Mode = "multiplayer"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSingle || m == ModeMultiplayer
}

// Question is one grid cell posed to the players.
type Question struct {
	ID             string            `json:"id"`
	GameID         string            `json:"gameId"`
	QuestionNumber int               `json:"questionNumber"`
	RowFeature     string            `json:"rowFeature"`
	RowFeatureType string            `json:"rowFeatureType"`
	ColFeature     string            `json:"colFeature"`
	ColFeatureType string            `json:"colFeatureType"`
	CorrectAnswers []string          `json:"correctAnswers"`
	CellPosition   grid.CellPosition `json:"cellPosition"`
	Difficulty     string            `json:"difficulty,omitempty"`
	AnswerCount    int               `json:"answerCount"`
	QuestionType   string            `json:"questionType,omitempty"`
	IsAnswered     bool              `json:"isAnswered"`
	AnsweredBy     string            `json:"answeredBy,omitempty"`
}

// Answer records one guess against a question.
type Answer struct {
	ID                 string    `json:"id"`
	GameID             string    `json:"gameId"`
	QuestionID         string    `json:"questionId"`
	PlayerID           string    `json:"playerId"`
	PlayerGuess        string    `json:"playerGuess"`
	IsCorrect          bool      `json:"isCorrect"`
	MatchedPlayerName  string    `json:"matchedPlayerName,omitempty"`
	AllPossibleAnswers []string  `json:"allPossibleAnswers"`
	GameMode           Mode      `json:"gameMode"`
	TurnNumber         int       `json:"turnNumber,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

// Game is a play session over one grid.
type Game struct {
	ID                string     `json:"id"`
	PlayerID          string     `json:"playerId"`
	SessionID         string     `json:"sessionId,omitempty"`
	GameMode          Mode       `json:"gameMode"`
	Player2ID         string     `json:"player2Id,omitempty"`
	Status            Status     `json:"status"`
	TotalQuestions    int        `json:"totalQuestions"`
	AnsweredQuestions int        `json:"answeredQuestions"`
	CorrectAnswers    int        `json:"correctAnswers"`
	Score             int        `json:"score"`
	Player1Score      int        `json:"player1Score"`
	Player2Score      int        `json:"player2Score"`
	CurrentTurn       string     `json:"currentTurn,omitempty"`
	Winner            string     `json:"winner,omitempty"`
	IndexVersion      uint64     `json:"indexVersion,omitempty"`
	GridSignature     string     `json:"gridSignature,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	Questions         []Question `json:"questions"`
	Answers           []Answer   `json:"answers"`
}

// Question returns the index of the question with id, or -1.
func (g *Game) Question(id string) int {
	for i := range g.Questions {
		if g.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// IsPlayer reports whether id takes part in the game.
func (g *Game) IsPlayer(id string) bool {
	if id == "" {
		return false
	}
	return id == g.PlayerID || (g.GameMode == ModeMultiplayer && id == g.Player2ID)
}

// Remaining counts unanswered questions.
func (g *Game) Remaining() int {
	n := 0
	for _, q := range g.Questions {
		if !q.IsAnswered {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so stores never share slices with callers.
func (g Game) Clone() Game {
	out := g
	out.Questions = make([]Question, len(g.Questions))
	for i, q := range g.Questions {
		q.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
		out.Questions[i] = q
	}
	out.Answers = make([]Answer, len(g.Answers))
	for i, a := range g.Answers {
		a.AllPossibleAnswers = append([]string(nil), a.AllPossibleAnswers...)
		out.Answers[i] = a
	}
	if g.EndTime != nil {
		end := *g.EndTime
		out.EndTime = &end
	}
	return out
}

// Store persists games by opaque id.
type Store interface {
	SaveGame(ctx context.Context, game Game) error
	GetGame(ctx context.Context, id string) (Game, error)
	DeleteGame(ctx context.Context, id string) error
}
