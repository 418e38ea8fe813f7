package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// JobFunc is a unit of scheduled work. The context carries the run timeout.
type JobFunc func(ctx context.Context) error

// Config controls where and how long scheduled jobs run
type Config struct {
	Location   *time.Location
	RunTimeout time.Duration
}

// Scheduler runs named jobs on cron schedules. Runs of the same job never overlap.
type Scheduler struct {
	cron    *cron.Cron
	config  Config
	logger  zerolog.Logger
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New creates a Scheduler; call Start to begin firing jobs
func New(config Config, logger zerolog.Logger) *Scheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	cronLogger := zerologAdapter{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(config.Location),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		config:  config,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// AddJob registers fn under a standard five-field cron spec
func (s *Scheduler) AddJob(name, spec string, fn JobFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, fn)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	s.logger.Info().Str("job", name).Str("spec", spec).Msg("Job scheduled")
	return nil
}

func (s *Scheduler) runJob(name string, fn JobFunc) {
	ctx := s.baseCtx
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	started := time.Now()
	s.logger.Info().Str("job", name).Msg("Job started")
	if err := fn(ctx); err != nil {
		s.logger.Error().Err(err).Str("job", name).Dur("duration", time.Since(started)).Msg("Job failed")
		return
	}
	s.logger.Info().Str("job", name).Dur("duration", time.Since(started)).Msg("Job finished")
}

// Start begins firing jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels running ones and waits for them until ctx ends
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	s.cancel()

	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop in time: %w", ctx.Err())
	}
}

// zerologAdapter satisfies cron.Logger
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (a zerologAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
