package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/scheduler"
	"github.com/osse101/FishBot_Go/internal/worker"
)

// Jobs holds the background machinery started alongside the HTTP server
type Jobs struct {
	Scheduler   *scheduler.Scheduler
	Pool        *worker.Pool
	AutoFishing *worker.AutoFishingJob
}

// InitializeJobs schedules the auto-fishing sweep and market expiry on cron.
// The scheduler is returned unstarted.
func InitializeJobs(cfg *config.Config, svc *Services) (*Jobs, error) {
	pool, err := worker.NewPool(cfg.Game.AutoFishingConcurrency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreatePool, err)
	}

	autoFishing := worker.NewAutoFishingJob(svc.Store, svc.Fishing, pool)
	expiry := worker.NewMarketExpiryJob(svc.Market)

	sched := scheduler.New()
	if err := sched.Schedule(worker.JobNameAutoFishing, cfg.Game.AutoFishingSchedule, autoFishing); err != nil {
		pool.Release()
		return nil, fmt.Errorf("%s: %w", ErrMsgScheduleJob, err)
	}
	if err := sched.Schedule(worker.JobNameMarketExpiry, cfg.Game.MarketExpirySchedule, expiry); err != nil {
		pool.Release()
		return nil, fmt.Errorf("%s: %w", ErrMsgScheduleJob, err)
	}

	slog.Info(LogMsgJobsScheduled,
		"auto_fishing", cfg.Game.AutoFishingSchedule,
		"market_expiry", cfg.Game.MarketExpirySchedule,
		"concurrency", cfg.Game.AutoFishingConcurrency)

	return &Jobs{Scheduler: sched, Pool: pool, AutoFishing: autoFishing}, nil
}
