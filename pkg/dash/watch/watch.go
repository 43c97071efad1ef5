// Package watch re-runs an analysis on a cron schedule.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Job is one analysis run.
type Job func(ctx context.Context) error

// Scheduler runs a Job on a schedule, one run at a time.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
	// Runs counts finished runs, including failed ones.
	Runs atomic.Int64
}

// NewScheduler creates a scheduler; a run still in progress when the next
// tick fires makes that tick a no-op.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := cron.VerbosePrintfLogger(log.New(os.Stderr, "cron: ", log.LstdFlags))
	return &Scheduler{
		Cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(logger))),
		Ctx:  ctx,
	}
}

// Register adds job under spec ("@every 5m", "*/15 9-16 * * 1-5", ...).
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.run(job) }); err != nil {
		return fmt.Errorf("register watch schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	if err := job(s.Ctx); err != nil {
		log.Printf("[WARN] watch run failed: %v", err)
	}
	s.Runs.Add(1)
}

// RunNow executes job immediately in the caller's goroutine.
func (s *Scheduler) RunNow(job Job) {
	s.run(job)
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] watch scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] watch scheduler stopped")
}

// Run starts the scheduler, runs job once right away and blocks until ctx
// is done.
func (s *Scheduler) Run(spec string, job Job) error {
	if err := s.Register(spec, job); err != nil {
		return err
	}
	s.RunNow(job)
	s.Start()
	<-s.Ctx.Done()
	s.Stop()
	return nil
}
