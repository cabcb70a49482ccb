package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper evicts expired limiter records on a cron schedule.
type Sweeper struct {
	limiter  *FixedWindow
	schedule string
	onSweep  func(removed, remaining int)
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
	running  bool
}

// NewSweeper creates a sweeper for limiter. An empty schedule uses
// DefaultSweepSchedule. onSweep, if non-nil, is called after every run.
func NewSweeper(limiter *FixedWindow, schedule string, onSweep func(removed, remaining int)) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &Sweeper{
		limiter:  limiter,
		schedule: schedule,
		onSweep:  onSweep,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// ValidateSchedule reports whether schedule is a valid cron spec
// (standard five-field or @every/@hourly descriptors).
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// Start schedules the sweep and stops it when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rate limit sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce() {
	removed := s.limiter.Sweep()
	remaining := s.limiter.Len()

	if removed > 0 {
		s.logger.Debug("evicted expired rate limit records",
			"removed", removed,
			"remaining", remaining,
		)
	}

	if s.onSweep != nil {
		s.onSweep(removed, remaining)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("rate limit sweeper stopped")
	}
}

// IsRunning returns true if the sweeper is scheduled.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
