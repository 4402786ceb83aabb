// Package scheduler provides cron-based job scheduling for PennyPipe.
//
// Its single consumer is the daily recurring-entry posting job.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner. Jobs are registered before Start; panics in
// a job are recovered so one bad run cannot kill the scheduler.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a stopped scheduler using the standard 5-field cron syntax
// (minute, hour, day of month, month, day of week).
func New() *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Scheduler{cron: c}
}

// AddJob schedules a task under the given cron expression.
func (s *Scheduler) AddJob(expr string, task func()) error {
	if _, err := s.cron.AddFunc(expr, task); err != nil {
		return err
	}
	slog.Info("Scheduler job registered", "cron", expr)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
