package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mfreitag/yelp-fusion/internal/metrics"
)

// Scheduler runs all watches on a fixed interval.
type Scheduler struct {
	cron    *cron.Cron
	runner  *Runner
	log     *slog.Logger
	entryID cron.EntryID
}

// NewScheduler creates a Scheduler that polls the runner's watches every
// interval.
func NewScheduler(
	runner *Runner,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		runner: runner,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.run)
	if err != nil {
		return nil, err
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled watch polls.
func (s *Scheduler) Start() {
	s.log.Info("watch scheduler started")
	s.cron.Start()
	s.syncNextRun()
}

// Stop gracefully stops the scheduler, waiting for a running poll to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("watch scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) run() {
	ctx := context.Background()
	s.log.Info("scheduled watch poll starting")
	if err := s.runner.RunAll(ctx); err != nil {
		s.log.Error("scheduled watch poll failed", "error", err)
	}
	s.syncNextRun()
}

// syncNextRun publishes the next scheduled poll time.
func (s *Scheduler) syncNextRun() {
	entry := s.cron.Entry(s.entryID)
	if !entry.Next.IsZero() {
		metrics.SchedulerNextRunTimestamp.Set(float64(entry.Next.Unix()))
	}
}
