// Package scheduler runs the periodic attendance summary.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard 5-field specs, an optional leading seconds field and
// descriptors such as @daily or @every 1h.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Job is one scheduled run. Its context is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with a single named job.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// Validate reports whether spec is a schedule the scheduler accepts.
func Validate(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

// New registers job under name to run on spec, interpreted in loc.
func New(spec string, loc *time.Location, name string, job Job, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		logger.InfoContext(ctx, "scheduled job started", "job", name)
		if err := job(ctx); err != nil {
			logger.ErrorContext(ctx, "scheduled job failed", "job", name, "error", err)
			return
		}
		logger.InfoContext(ctx, "scheduled job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels the running one and waits for it to return
// or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
