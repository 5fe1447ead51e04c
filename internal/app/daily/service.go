package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/snapshots"
	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

var (
	// ErrNotFound is returned for a past date with no archived grid.
	ErrNotFound = snapshots.ErrNotFound
	// ErrFutureDate is returned when asking for a grid after today.
	ErrFutureDate = errors.New("daily grid not yet published")
)

// Archive stores one grid per date.
type Archive interface {
	LoadGrid(date string) (grid.Grid, error)
	WriteGrid(date string, g grid.Grid) error
}

// Generator produces grids, avoiding the previous signature when one is given.
type Generator interface {
	Generate(ctx context.Context, previous string) (grid.Grid, error)
}

// Service serves the grid of the day, generating and archiving it on first use.
type Service struct {
	archive Archive
	gen     Generator
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewService constructs a daily grid service.
func NewService(archive Archive, gen Generator, logger *slog.Logger) *Service {
	return &Service{
		archive: archive,
		gen:     gen,
		logger:  logger,
		now:     time.Now,
	}
}

// Today returns today's UTC date.
func (s *Service) Today() string {
	return timeutil.Today(s.now())
}

// Get returns the grid for date. Today's grid is generated and archived when missing;
// past dates are only served from the archive.
func (s *Service) Get(ctx context.Context, date string) (grid.Grid, error) {
	today := s.Today()
	if date == "" {
		date = today
	}
	if date > today {
		return grid.Grid{}, ErrFutureDate
	}
	if date < today {
		return s.archive.LoadGrid(date)
	}
	return s.Ensure(ctx, date)
}

// Ensure loads the grid for date, generating and archiving one when absent.
func (s *Service) Ensure(ctx context.Context, date string) (grid.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.archive.LoadGrid(date)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, snapshots.ErrNotFound) {
		return grid.Grid{}, err
	}
	return s.generate(ctx, date, s.previousSignature(date))
}

// Refresh replaces the grid for date with a newly generated one that differs from it.
func (s *Service) Refresh(ctx context.Context, date string) (grid.Grid, error) {
	if date == "" {
		date = s.Today()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := ""
	if current, err := s.archive.LoadGrid(date); err == nil {
		previous = current.Signature
	} else if !errors.Is(err, snapshots.ErrNotFound) {
		return grid.Grid{}, err
	}
	return s.generate(ctx, date, previous)
}

func (s *Service) generate(ctx context.Context, date, previous string) (grid.Grid, error) {
	logger := logging.FromContext(ctx, s.logger)
	start := time.Now()
	g, err := s.gen.Generate(ctx, previous)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("generate daily grid %s: %w", date, err)
	}
	if err := s.archive.WriteGrid(date, g); err != nil {
		logging.Warn(logger, "daily grid write failed", err, slog.String(logging.FieldDate, date))
		return g, nil
	}
	logging.Info(logger, "daily grid written",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldValidCells, g.ValidCells),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return g, nil
}

// previousSignature keeps consecutive days from repeating the same grid.
func (s *Service) previousSignature(date string) string {
	parsed, err := timeutil.ParseDate(date)
	if err != nil {
		return ""
	}
	prev, err := s.archive.LoadGrid(timeutil.FormatDate(parsed.AddDate(0, 0, -1)))
	if err != nil {
		return ""
	}
	return prev.Signature
}
