package games

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	domaingames "github.com/preston-bernstein/trivia-grid-service/internal/domain/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/matcher"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/validation"
)

const (
	defaultGenerationTimeout = 2 * time.Second
	lockStripes              = 64
)

// AssemblerSource hands out assemblers over the current index.
type AssemblerSource interface {
	Assembler(opts ...grid.Option) (*grid.Assembler, error)
}

// Config tunes the game service.
type Config struct {
	MinAnswers        int
	GenerationTimeout time.Duration
}

// Service coordinates game operations over a Store.
type Service struct {
	store   domaingames.Store
	source  AssemblerSource
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	now   func() time.Time
	newID func() string
	locks [lockStripes]sync.Mutex
}

// NewService constructs a Service.
func NewService(store domaingames.Store, source AssemblerSource, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if cfg.MinAnswers <= 0 {
		cfg.MinAnswers = validation.DefaultMinimum
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = defaultGenerationTimeout
	}
	return &Service{
		store:   store,
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		newID:   newID,
	}
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// CreateRequest starts a game. When Questions is nil a grid is generated; a non-nil
// list is used as supplied after passing the validation gate.
type CreateRequest struct {
	PlayerID  string           `json:"playerId"`
	SessionID string           `json:"sessionId"`
	GameMode  domaingames.Mode `json:"gameMode"`
	Player2ID string           `json:"player2Id"`
	Questions []grid.Question  `json:"questions"`
}

// AnswerRequest is one guess.
type AnswerRequest struct {
	QuestionID string `json:"questionId"`
	PlayerID   string `json:"playerId"`
	Guess      string `json:"playerGuess"`
}

// AnswerResult is the stored answer together with the updated game.
type AnswerResult struct {
	Answer domaingames.Answer `json:"answer"`
	Game   domaingames.Game   `json:"game"`
}

// Generate assembles a grid from the current index under the generation timeout.
func (s *Service) Generate(ctx context.Context, previous string) (grid.Grid, error) {
	asm, err := s.source.Assembler()
	if err != nil {
		return grid.Grid{}, err
	}
	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	start := time.Now()
	var g grid.Grid
	if previous != "" {
		g, err = asm.AssembleFresh(genCtx, previous)
	} else {
		g, err = asm.Assemble(genCtx)
	}
	s.recordGeneration(g, err, time.Since(start))

	logger := logging.FromContext(ctx, s.logger)
	if err != nil {
		logging.Warn(logger, "grid generation failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		return grid.Grid{}, err
	}
	logging.Debug(logger, "grid generated",
		slog.Int(logging.FieldAttempts, g.Attempts),
		slog.Int(logging.FieldValidCells, g.ValidCells),
		slog.Uint64(logging.FieldIndexVersion, g.IndexVersion),
		slog.Bool("fallback", g.Fallback),
	)
	return g, nil
}

func (s *Service) recordGeneration(g grid.Grid, err error, elapsed time.Duration) {
	outcome := metrics.OutcomeSuccess
	attempts := g.Attempts
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		outcome = metrics.OutcomeTimeout
	default:
		outcome = metrics.OutcomeExhausted
	}
	var genErr *grid.GenerationError
	if errors.As(err, &genErr) {
		attempts = genErr.Attempts
	}
	s.metrics.RecordGeneration(outcome, attempts, g.ValidCells, g.Fallback, elapsed)
}

// Validate runs the validation gate over questions and records the outcome.
func (s *Service) Validate(questions []grid.Question) validation.Report {
	report := validation.Validate(toValidation(questions), s.cfg.MinAnswers)
	s.metrics.RecordValidation(report.IsValid, report.Summary.InvalidQuestions)
	return report
}

func toValidation(questions []grid.Question) []validation.Question {
	out := make([]validation.Question, len(questions))
	for i, q := range questions {
		out[i] = validation.Question{
			QuestionNumber: q.QuestionNumber,
			RowFeature:     q.RowFeature,
			ColFeature:     q.ColFeature,
			Answers:        q.CorrectAnswers,
		}
	}
	return out
}

// Create starts a game. Persistence is best effort: a store failure is logged and the
// game is still returned.
func (s *Service) Create(ctx context.Context, req CreateRequest) (domaingames.Game, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Player2ID = strings.TrimSpace(req.Player2ID)
	if req.GameMode == "" {
		req.GameMode = domaingames.ModeSingle
	}
	switch {
	case req.PlayerID == "":
		return domaingames.Game{}, invalid("playerId is required")
	case !req.GameMode.Valid():
		return domaingames.Game{}, invalid("unknown gameMode %q", req.GameMode)
	case req.GameMode == domaingames.ModeMultiplayer && req.Player2ID == "":
		return domaingames.Game{}, invalid("player2Id is required for multiplayer games")
	case req.GameMode == domaingames.ModeMultiplayer && req.Player2ID == req.PlayerID:
		return domaingames.Game{}, invalid("player2Id must differ from playerId")
	case req.Questions != nil && len(req.Questions) == 0:
		return domaingames.Game{}, invalid("questions must not be empty")
	}

	questions := req.Questions
	var generated grid.Grid
	if questions == nil {
		g, err := s.Generate(ctx, "")
		if err != nil {
			return domaingames.Game{}, err
		}
		generated = g
		questions = g.Questions()
	}

	if report := s.Validate(questions); !report.IsValid {
		return domaingames.Game{}, &ValidationError{Report: report}
	}

	now := s.now().UTC()
	game := domaingames.Game{
		ID:             s.newID(),
		PlayerID:       req.PlayerID,
		SessionID:      req.SessionID,
		GameMode:       req.GameMode,
		Status:         domaingames.StatusActive,
		TotalQuestions: len(questions),
		IndexVersion:   generated.IndexVersion,
		GridSignature:  generated.Signature,
		CreatedAt:      now,
		UpdatedAt:      now,
		Questions:      make([]domaingames.Question, 0, len(questions)),
		Answers:        []domaingames.Answer{},
	}
	if req.GameMode == domaingames.ModeMultiplayer {
		game.Player2ID = req.Player2ID
		game.CurrentTurn = req.PlayerID
	}
	for i, q := range questions {
		game.Questions = append(game.Questions, domaingames.Question{
			ID:             s.newID(),
			GameID:         game.ID,
			QuestionNumber: i + 1,
			RowFeature:     q.RowFeature,
			RowFeatureType: string(q.RowFeatureType),
			ColFeature:     q.ColFeature,
			ColFeatureType: string(q.ColFeatureType),
			CorrectAnswers: append([]string(nil), q.CorrectAnswers...),
			CellPosition:   q.CellPosition,
			Difficulty:     string(q.Difficulty),
			AnswerCount:    len(q.CorrectAnswers),
			QuestionType:   string(q.QuestionType),
		})
	}

	logger := logging.FromContext(ctx, s.logger)
	if err := s.store.SaveGame(ctx, game); err != nil {
		logging.Warn(logger, "game persistence failed", err, slog.String(logging.FieldGameID, game.ID))
	}
	s.metrics.RecordGameCreated(string(game.GameMode))
	logging.Info(logger, "game created",
		slog.String(logging.FieldGameID, game.ID),
		slog.String("game_mode", string(game.GameMode)),
		slog.Int(logging.FieldCount, game.TotalQuestions),
	)
	return game, nil
}

// Get returns a game by id.
func (s *Service) Get(ctx context.Context, id string) (domaingames.Game, error) {
	return s.store.GetGame(ctx, id)
}

// Delete removes a game.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	return s.store.DeleteGame(ctx, id)
}

// SubmitAnswer checks a guess against the question's answers, updates scores and turn
// order, and completes the game once every question is answered.
func (s *Service) SubmitAnswer(ctx context.Context, gameID string, req AnswerRequest) (AnswerResult, error) {
	if strings.TrimSpace(req.QuestionID) == "" {
		return AnswerResult{}, invalid("questionId is required")
	}

	unlock := s.lock(gameID)
	defer unlock()

	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return AnswerResult{}, err
	}
	if game.Status == domaingames.StatusCompleted {
		return AnswerResult{}, ErrGameCompleted
	}
	qi := game.Question(req.QuestionID)
	if qi < 0 {
		return AnswerResult{}, ErrQuestionNotFound
	}
	question := &game.Questions[qi]
	if question.IsAnswered {
		return AnswerResult{}, ErrQuestionAnswered
	}

	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" && game.GameMode == domaingames.ModeSingle {
		playerID = game.PlayerID
	}
	if !game.IsPlayer(playerID) {
		return AnswerResult{}, invalid("player %q is not in this game", playerID)
	}
	if game.GameMode == domaingames.ModeMultiplayer && playerID != game.CurrentTurn {
		return AnswerResult{}, ErrNotYourTurn
	}

	matched, correct := matcher.Find(req.Guess, question.CorrectAnswers)
	now := s.now().UTC()
	answer := domaingames.Answer{
		ID:                 s.newID(),
		GameID:             game.ID,
		QuestionID:         question.ID,
		PlayerID:           playerID,
		PlayerGuess:        req.Guess,
		IsCorrect:          correct,
		MatchedPlayerName:  matched,
		AllPossibleAnswers: append([]string(nil), question.CorrectAnswers...),
		GameMode:           game.GameMode,
		Timestamp:          now,
	}
	if game.GameMode == domaingames.ModeMultiplayer {
		answer.TurnNumber = game.AnsweredQuestions + 1
	}

	question.IsAnswered = true
	question.AnsweredBy = playerID
	game.Answers = append(game.Answers, answer)
	game.AnsweredQuestions++
	game.UpdatedAt = now
	if correct {
		game.CorrectAnswers++
	}

	if game.GameMode == domaingames.ModeSingle {
		game.Score = game.CorrectAnswers
	} else {
		if correct {
			if playerID == game.PlayerID {
				game.Player1Score++
			} else {
				game.Player2Score++
			}
		}
		if playerID == game.PlayerID {
			game.CurrentTurn = game.Player2ID
		} else {
			game.CurrentTurn = game.PlayerID
		}
	}
	if game.AnsweredQuestions >= game.TotalQuestions {
		complete(&game, now, "")
	}

	if err := s.store.SaveGame(ctx, game); err != nil {
		return AnswerResult{}, err
	}
	s.metrics.RecordAnswer(correct)
	logging.Debug(logging.FromContext(ctx, s.logger), "answer recorded",
		slog.String(logging.FieldGameID, game.ID),
		slog.Bool("correct", correct),
		slog.Int("answered", game.AnsweredQuestions),
	)
	return AnswerResult{Answer: answer, Game: game}, nil
}

// End completes a game early. A winner, when given, must take part in the game;
// otherwise multiplayer games pick the higher scorer.
func (s *Service) End(ctx context.Context, gameID, winnerID string) (domaingames.Game, error) {
	unlock := s.lock(gameID)
	defer unlock()

	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return domaingames.Game{}, err
	}
	if game.Status == domaingames.StatusCompleted {
		return domaingames.Game{}, ErrGameCompleted
	}
	winnerID = strings.TrimSpace(winnerID)
	if winnerID != "" && !game.IsPlayer(winnerID) {
		return domaingames.Game{}, invalid("winner %q is not in this game", winnerID)
	}

	complete(&game, s.now().UTC(), winnerID)
	if err := s.store.SaveGame(ctx, game); err != nil {
		return domaingames.Game{}, err
	}
	return game, nil
}

// complete marks the game finished. Multiplayer games score the higher of the two
// players and name the leader unless a winner is given; a tie names nobody.
func complete(game *domaingames.Game, now time.Time, winnerID string) {
	game.Status = domaingames.StatusCompleted
	game.EndTime = &now
	game.UpdatedAt = now
	if game.GameMode == domaingames.ModeMultiplayer {
		game.Score = max(game.Player1Score, game.Player2Score)
		if winnerID == "" {
			switch {
			case game.Player1Score > game.Player2Score:
				winnerID = game.PlayerID
			case game.Player2Score > game.Player1Score:
				winnerID = game.Player2ID
			}
		}
	}
	game.Winner = winnerID
}

// lock serializes read-modify-write cycles per game.
func (s *Service) lock(gameID string) func() {
	mu := &s.locks[xxhash.Sum64String(gameID)%lockStripes]
	mu.Lock()
	return mu.Unlock
}
