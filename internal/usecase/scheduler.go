package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
)

// Scheduler wires the interval driver with recurring ingestion and triage
// runs, optionally publishing a digest after each batch.
type Scheduler struct {
	driver    ports.Scheduler
	pipeline  *Pipeline
	ingestion *Ingestion
	notifier  ports.Notifier
	batchSize int
	logger    *slog.Logger
}

// SchedulerDeps carries everything a recurring run touches.
type SchedulerDeps struct {
	Driver    ports.Scheduler
	Pipeline  *Pipeline
	Ingestion *Ingestion
	Notifier  ports.Notifier
	BatchSize int
	Logger    *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(deps SchedulerDeps) *Scheduler {
	return &Scheduler{
		driver:    deps.Driver,
		pipeline:  deps.Pipeline,
		ingestion: deps.Ingestion,
		notifier:  deps.Notifier,
		batchSize: deps.BatchSize,
		logger:    deps.Logger,
	}
}

// Start registers the recurring job with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	return s.driver.Start(ctx, func(trigger time.Time) {
		s.runOnce(ctx, trigger)
	})
}

// Stop tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context, trigger time.Time) {
	if s.ingestion != nil {
		if _, err := s.ingestion.Run(ctx); err != nil {
			s.warn("scheduled ingestion failed", "error", err)
		}
	}

	stats, err := s.pipeline.Run(ctx, s.batchSize)
	if err != nil {
		s.warn("scheduled triage failed", "error", err)
		return
	}

	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishDigest(ctx, buildDigest(trigger, stats)); err != nil {
		s.warn("publish digest failed", "error", err)
	}
}

func buildDigest(trigger time.Time, stats domain.RunStats) string {
	return fmt.Sprintf(
		"Content triage run %s\nprocessed: %d\napproved: %d\nreview: %d\nrejected: %d\nai errors: %d\ntook: %dms",
		trigger.UTC().Format(time.RFC3339),
		stats.Processed,
		stats.Approved,
		stats.Review,
		stats.Rejected,
		stats.AIErrors,
		stats.ExecutionTimeMS,
	)
}

func (s *Scheduler) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
