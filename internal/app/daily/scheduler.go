package daily

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/logging"
	"github.com/preston-bernstein/trivia-grid-service/internal/timeutil"
)

// Scheduler keeps today's grid archived and publishes tomorrow's ahead of time.
type Scheduler struct {
	svc       *Service
	hourUTC   int
	logger    *slog.Logger
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// NewScheduler constructs a scheduler that pre-generates tomorrow's grid at hourUTC.
func NewScheduler(svc *Service, hourUTC int, logger *slog.Logger) *Scheduler {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 0
	}
	return &Scheduler{
		svc:       svc,
		hourUTC:   hourUTC,
		logger:    logger,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
}

// Run ensures today's grid, then checks hourly until ctx is done. Callers should run
// this in a goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	if s == nil || s.svc == nil {
		return
	}
	logging.Info(s.logger, "daily grid scheduler starting", slog.Int("hour_utc", s.hourUTC))
	s.tick(ctx, s.now().UTC())

	ticker := s.newTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, s.now().UTC())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	s.ensure(ctx, timeutil.FormatDate(now))
	if now.Hour() == s.hourUTC {
		s.ensure(ctx, timeutil.FormatDate(now.AddDate(0, 0, 1)))
	}
}

func (s *Scheduler) ensure(ctx context.Context, date string) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.svc.Ensure(ctx, date); err != nil {
		logging.Warn(s.logger, "daily grid ensure failed", err, slog.String(logging.FieldDate, date))
	}
}
