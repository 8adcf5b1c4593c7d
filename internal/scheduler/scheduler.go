package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"wechat_fetcher/internal/config"
	"wechat_fetcher/internal/domain"
)

const runTimeout = 15 * time.Minute

// Runner defines the interface for one full sync run.
type Runner interface {
	RunOnce(ctx context.Context) (*domain.RunSnapshot, error)
}

type Scheduler struct {
	runner Runner
	cfg    config.ScheduleConfig
	logger *slog.Logger

	mu sync.Mutex // at most one run at a time
}

func NewScheduler(runner Runner, cfg config.ScheduleConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
}

// Start runs one sync immediately, then keeps running on the interval
// and daily wall-clock entries until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"interval", s.cfg.Interval,
		"daily_at", s.cfg.DailyAt,
	)

	s.run(ctx)

	c := cron.New()

	if s.cfg.Interval > 0 {
		spec := fmt.Sprintf("@every %s", s.cfg.Interval)
		if _, err := c.AddFunc(spec, func() { s.run(ctx) }); err != nil {
			return fmt.Errorf("schedule interval: %w", err)
		}
	}

	for _, at := range s.cfg.DailyAt {
		spec, err := DailySpec(at)
		if err != nil {
			return fmt.Errorf("schedule daily run: %w", err)
		}
		if _, err := c.AddFunc(spec, func() { s.run(ctx) }); err != nil {
			return fmt.Errorf("schedule daily run: %w", err)
		}
	}

	c.Start()
	<-ctx.Done()

	stop := c.Stop()
	<-stop.Done()

	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) run(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Warn("previous run still in progress, skipping")
		return
	}
	defer s.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	snap, err := s.runner.RunOnce(runCtx)
	if err != nil {
		s.logger.Error("sync run failed", "error", err)
		return
	}

	s.logger.Info("sync run finished",
		"accounts", snap.SyncStats.TotalAccounts,
		"articles", snap.SyncStats.TotalArticles,
		"new", snap.SyncStats.NewArticles,
		"cost", snap.SyncStats.TotalCost,
	)
}

// DailySpec converts a wall-clock "HH:MM" entry to a cron expression.
func DailySpec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("invalid daily time %q: %w", at, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
