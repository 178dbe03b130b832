package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs a workload-then-sweep cycle on a cron schedule until its
// context is cancelled. Cycles never overlap: if one is still running when
// the next fires, the new one is skipped.
type Scheduler struct {
	logger *zap.Logger
	cron   *cron.Cron
	cycle  func(context.Context) int
	mu     sync.Mutex
}

func New(logger *zap.Logger, cycle func(context.Context) int) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(),
		cycle:  cycle,
	}
}

// Start validates spec, schedules the cycle and blocks until ctx is
// cancelled, then waits for a running cycle to finish.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	if _, err := s.cron.AddFunc(spec, func() { s.runCycle(ctx) }); err != nil {
		return fmt.Errorf("scheduling run: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", spec))

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("scheduler stopped")

	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Warn("previous cycle still running, skipping this one")
		return
	}
	defer s.mu.Unlock()

	if code := s.cycle(ctx); code != 0 {
		s.logger.Warn("workload exited non-zero", zap.Int("exit_code", code))
	}
}
