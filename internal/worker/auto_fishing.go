package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/metrics"
)

// AutoFisher runs one scheduler-driven fishing attempt
type AutoFisher interface {
	AutoFish(ctx context.Context, userID string) (*domain.FishingResult, error)
}

// AutoFishingLister lists users with auto-fishing enabled
type AutoFishingLister interface {
	ListAutoFishingUserIDs(ctx context.Context) ([]string, error)
}

// SweepSummary counts what one auto-fishing sweep did
type SweepSummary struct {
	Users   int `json:"users"`
	Caught  int `json:"caught"`
	Missed  int `json:"missed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// AutoFishingJob fishes for every opted-in user whose cooldown has elapsed
type AutoFishingJob struct {
	users   AutoFishingLister
	fisher  AutoFisher
	pool    *Pool
	running atomic.Bool
}

// NewAutoFishingJob creates the auto-fishing sweep
func NewAutoFishingJob(users AutoFishingLister, fisher AutoFisher, pool *Pool) *AutoFishingJob {
	return &AutoFishingJob{users: users, fisher: fisher, pool: pool}
}

// Process implements Job. An overlapping run is skipped, not reported.
func (j *AutoFishingJob) Process(ctx context.Context) error {
	_, err := j.Sweep(ctx)
	if errors.Is(err, ErrSweepInProgress) {
		return nil
	}
	return err
}

// Sweep runs one pass and returns ErrSweepInProgress if another is running
func (j *AutoFishingJob) Sweep(ctx context.Context) (*SweepSummary, error) {
	log := logger.FromContext(ctx)
	if !j.running.CompareAndSwap(false, true) {
		log.Info(LogMsgAutoFishingOverlap)
		return nil, ErrSweepInProgress
	}
	defer j.running.Store(false)

	ids, err := j.users.ListAutoFishingUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Debug(LogMsgAutoFishingStarting, "users", len(ids))

	summary := &SweepSummary{Users: len(ids)}
	var mu sync.Mutex
	j.pool.Each(ctx, ids, func(ctx context.Context, userID string) {
		outcome := j.attempt(ctx, userID)
		metrics.AutoFishAttempts.WithLabelValues(outcome).Inc()

		mu.Lock()
		defer mu.Unlock()
		switch outcome {
		case metrics.ResultSuccess:
			summary.Caught++
		case metrics.ResultMiss:
			summary.Missed++
		case metrics.ResultSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	})

	log.Info(LogMsgAutoFishingCompleted,
		"users", summary.Users,
		"caught", summary.Caught,
		"missed", summary.Missed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", time.Since(start))
	return summary, nil
}

func (j *AutoFishingJob) attempt(ctx context.Context, userID string) string {
	result, err := j.fisher.AutoFish(ctx, userID)
	switch {
	case err != nil && isIneligible(err):
		return metrics.ResultSkipped
	case err != nil:
		logger.FromContext(ctx).Error(LogMsgAutoFishingUserFailed, "user_id", userID, "error", err)
		return metrics.ResultError
	case result == nil:
		return metrics.ResultSkipped
	case result.Success:
		return metrics.ResultSuccess
	default:
		return metrics.ResultMiss
	}
}

// isIneligible reports the precondition failures that are expected for
// opted-in users between attempts
func isIneligible(err error) bool {
	return errors.Is(err, domain.ErrOnCooldown{}) ||
		errors.Is(err, domain.ErrNoRodEquipped) ||
		errors.Is(err, domain.ErrPondFull) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrUserNotFound)
}
