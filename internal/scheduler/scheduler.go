package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"CurveWatch/internal/pipeline"
)

// Scheduler warms the table cache with the current day's file so the
// first interactive query after publication does not pay for the
// fetch.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
}

// NewScheduler creates a scheduler around a pipeline.
func NewScheduler(p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
	}
}

// Register adds the daily prefetch task.
func (s *Scheduler) Register(prefetchCron string) error {
	if _, err := s.Cron.AddFunc(prefetchCron, s.prefetchTask); err != nil {
		return fmt.Errorf("register prefetch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) prefetchTask() {
	date := time.Now()
	log.Printf("[INFO] prefetching %s", date.Format("2006-01-02"))
	if err := s.Pipeline.Warm(date); err != nil {
		// Holidays produce a 404 and that is fine.
		log.Printf("[WARN] prefetch: %v", err)
	}
}
