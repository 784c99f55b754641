package backup

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/robfig/cron/v3"
)

// Scheduler runs a job on a standard five-field cron spec or a descriptor
// such as "@daily".
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
}

func NewScheduler(spec string, job func(ctx context.Context) error, l logging.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		logger: l.With("module", "backup_scheduler"),
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if err := job(ctx); err != nil {
			s.logger.Error(ctx, "scheduled backup failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}

	return s, nil
}

// Run starts the schedule and blocks until ctx is done. A job already in
// progress is allowed to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info(ctx, "Starting backup scheduler")
	s.cron.Start()

	<-ctx.Done()

	s.logger.Info(ctx, "Stopping backup scheduler...")
	<-s.cron.Stop().Done()
}
