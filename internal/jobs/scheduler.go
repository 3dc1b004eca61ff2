package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

// Add registers a job under a cron spec (standard 5-field format).
func (s *Scheduler) Add(spec, name string, run func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Info("job started", zap.String("job", name))
		run(context.Background())
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("background scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("background scheduler stopped")
}
