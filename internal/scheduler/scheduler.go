package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/metrics"
	"github.com/osse101/FishBot_Go/internal/worker"
)

// Scheduler runs jobs on cron specs. A job still running when its next
// tick fires is skipped for that tick.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler. Nothing runs until Start.
func New() *Scheduler {
	l := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule registers job under name to run on spec ("@every 30s", "*/5 * * * *")
func (s *Scheduler) Schedule(name, spec string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidSpec, spec, err)
	}
	logger.FromContext(s.ctx).Info(LogMsgJobScheduled, "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) run(name string, job worker.Job) {
	ctx := logger.WithRequestID(s.ctx, logger.GenerateRequestID())
	start := time.Now()

	err := job.Process(ctx)

	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.JobRuns.WithLabelValues(name, metrics.ResultError).Inc()
		logger.FromContext(ctx).Error(worker.LogMsgWorkerJobFailed, "job", name, "error", err)
		return
	}
	metrics.JobRuns.WithLabelValues(name, metrics.ResultSuccess).Inc()
}

// Start begins firing scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs' context and waits for them to return, or for
// ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		logger.FromContext(ctx).Info(LogMsgSchedulerStopped)
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgSchedulerStopTimeout)
		return ctx.Err()
	}
}

// cronLogger routes cron's own logging through slog. Routine scheduling
// chatter goes to debug.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Default().Debug(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Default().Error(msg, append(keysAndValues, "error", err)...)
}
