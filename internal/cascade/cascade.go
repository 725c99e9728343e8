// Package cascade runs the follow-up hooks that fire after a state-changing
// operation commits. Hook failures are logged and never reach the caller.
package cascade

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// TechnologySweeper unlocks newly qualifying technologies
type TechnologySweeper interface {
	SweepAutoUnlocks(ctx context.Context, userID string) ([]domain.Technology, error)
}

// AchievementEvaluator pays out newly met achievements
type AchievementEvaluator interface {
	Evaluate(ctx context.Context, userID string) ([]domain.Achievement, error)
}

// Runner fans out to the hooks. Either hook may be nil.
type Runner struct {
	tech TechnologySweeper
	ach  AchievementEvaluator
}

// NewRunner creates a Runner
func NewRunner(tech TechnologySweeper, ach AchievementEvaluator) *Runner {
	return &Runner{tech: tech, ach: ach}
}

// AfterProgress runs after exp may have changed: technology sweep, then achievements
func (r *Runner) AfterProgress(ctx context.Context, userID string) ([]domain.Technology, []domain.Achievement) {
	if r == nil {
		return nil, nil
	}
	var techs []domain.Technology
	if r.tech != nil {
		var err error
		techs, err = r.tech.SweepAutoUnlocks(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSweepFailed, "user_id", userID, "error", err)
		}
	}
	return techs, r.AfterActivity(ctx, userID)
}

// AfterActivity runs the achievement evaluator only
func (r *Runner) AfterActivity(ctx context.Context, userID string) []domain.Achievement {
	if r == nil || r.ach == nil {
		return nil
	}
	done, err := r.ach.Evaluate(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgEvaluateFailed, "user_id", userID, "error", err)
		return nil
	}
	return done
}

const (
	LogMsgSweepFailed    = "Technology sweep failed after commit"
	LogMsgEvaluateFailed = "Achievement evaluation failed after commit"
)
