// Package scheduler runs periodic site index regeneration.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("schedule interval must be positive")

// Scheduler wraps a gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(_ context.Context) {
	slog.Info("Starting scheduler", logfields.JobCount(len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler, waiting for running tasks.
func (s *Scheduler) Stop(_ context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleEvery runs task every interval. A run still in progress when the
// next tick arrives causes that tick to be skipped.
// Returns the job ID for later management.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic job %q: %w", name, err)
	}
	return job.ID().String(), nil
}

// ScheduleCron runs task on a standard five-field cron expression.
func (s *Scheduler) ScheduleCron(name, expr string, task func()) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", errors.New("cron expression is empty")
	}
	job, err := s.scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create cron job %q: %w", name, err)
	}
	return job.ID().String(), nil
}

// JobCount reports the number of registered jobs.
func (s *Scheduler) JobCount() int { return len(s.scheduler.Jobs()) }
