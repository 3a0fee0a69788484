package job

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
)

// Scheduler runs jobs on cron schedules. Standard five-field specs and
// descriptors such as "@every 1h" or "@daily" are accepted.
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
}

func NewScheduler(l logging.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{l}))),
		logger: l,
	}
}

// Add registers j under spec. Overlapping runs of the same job are skipped.
func (s *Scheduler) Add(spec string, j cron.Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cronLogger{s.logger})).Then(j)
	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends
// first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	l logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(context.Background(), msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(context.Background(), msg, append(keysAndValues, "error", err)...)
}
