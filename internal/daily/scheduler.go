package daily

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Scheduler runs the daily pipeline once per day at a fixed UTC wall-clock
// time. There is no retry within a day; a failed run is logged and the next
// day's tick is the retry.
type Scheduler struct {
	pipeline *Pipeline
	health   *Health
	runAt    string // "HH:MM" in UTC
	now      func() time.Time
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	Pipeline *Pipeline
	Health   *Health
	RunAt    string
}

// NewScheduler creates a new daily scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	runAt := cfg.RunAt
	if runAt == "" {
		runAt = "23:01"
	}
	health := cfg.Health
	if health == nil {
		health = NewHealth()
	}
	return &Scheduler{
		pipeline: cfg.Pipeline,
		health:   health,
		runAt:    runAt,
		now:      time.Now,
	}
}

// Health returns the health tracker shared with the HTTP surface.
func (s *Scheduler) Health() *Health {
	return s.health
}

// Run blocks until ctx is cancelled, executing the pipeline at each daily
// trigger time with commit enabled.
func (s *Scheduler) Run(ctx context.Context) error {
	hour, minute, err := parseRunAt(s.runAt)
	if err != nil {
		return err
	}

	slog.Info("daily scheduler started", "run_at", s.runAt)

	for {
		wait := untilNext(s.now().UTC(), hour, minute)
		slog.Debug("next daily run scheduled", "in", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("daily scheduler shutting down")
			return ctx.Err()

		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	date := s.now().UTC()

	result, err := s.pipeline.Run(ctx, date, true)
	switch {
	case err != nil:
		s.health.SetUnhealthy("daily", err)
		slog.Error("scheduled daily run failed", "error", err)
	case result.NoEvents:
		s.health.SetHealthy("daily", "no events for date")
	case !result.Committed:
		s.health.SetUnhealthy("daily", fmt.Errorf("artifact for %s was not published", result.Date))
	default:
		s.health.SetHealthy("daily", "published "+result.Date)
	}
}

func parseRunAt(runAt string) (hour, minute int, err error) {
	if _, err := time.Parse("15:04", runAt); err != nil {
		return 0, 0, fmt.Errorf("invalid run time %q (want HH:MM): %w", runAt, err)
	}
	fmt.Sscanf(runAt, "%d:%d", &hour, &minute)
	return hour, minute, nil
}

// untilNext returns the duration from now to the next occurrence of the
// given UTC wall-clock time.
func untilNext(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
