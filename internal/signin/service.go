// Package signin implements the once-per-day sign-in reward with streaks.
package signin

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Config holds the reward schedule
type Config struct {
	BaseReward      int64
	StreakIncrement int64
	// StreakCap stops the reward growing after this many consecutive days
	StreakCap int
	Exp       int64
}

// Service handles daily sign-in
type Service interface {
	SignIn(ctx context.Context, userID string) (*domain.SignInResult, error)
}

type service struct {
	store  repository.Store
	ledger *economy.Ledger
	curve  leveling.Curve
	bus    event.Bus
	locks  *concurrency.LockManager
	hooks  *cascade.Runner
	cfg    Config
	now    func() time.Time
}

// NewService creates a sign-in service
func NewService(store repository.Store, ledger *economy.Ledger, curve leveling.Curve, bus event.Bus, locks *concurrency.LockManager, hooks *cascade.Runner, cfg Config) Service {
	return &service{
		store:  store,
		ledger: ledger,
		curve:  curve,
		bus:    bus,
		locks:  locks,
		hooks:  hooks,
		cfg:    cfg,
		now:    time.Now,
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextStreak returns the streak after signing in at now. A gap of more than
// one calendar day resets it.
func NextStreak(last *time.Time, streak int, now time.Time) int {
	if last == nil {
		return 1
	}
	if day(*last).AddDate(0, 0, 1).Equal(day(now)) {
		return streak + 1
	}
	return 1
}

// Reward is the gold paid for a streak
func (c Config) Reward(streak int) int64 {
	if c.StreakCap > 0 && streak > c.StreakCap {
		streak = c.StreakCap
	}
	if streak < 1 {
		streak = 1
	}
	return c.BaseReward + c.StreakIncrement*int64(streak-1)
}

func (s *service) SignIn(ctx context.Context, userID string) (*domain.SignInResult, error) {
	unlock := s.locks.Lock(userID)
	result, err := s.signIn(ctx, userID)
	unlock()
	if err != nil {
		return nil, err
	}

	event.PublishBestEffort(ctx, s.bus, event.New(event.SignedIn, domain.SignInLog{
		UserID: userID, Reward: result.Reward, Streak: result.Streak,
	}))
	if result.LevelUp != nil {
		event.PublishBestEffort(ctx, s.bus, event.New(event.LevelUp, domain.LevelUpPayload{UserID: userID, LevelUp: *result.LevelUp}))
	}
	result.UnlockedTechnologies, result.CompletedAchievements = s.hooks.AfterProgress(ctx, userID)
	return result, nil
}

func (s *service) signIn(ctx context.Context, userID string) (*domain.SignInResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	now := s.now().UTC()
	if user.LastSignIn != nil && day(*user.LastSignIn).Equal(day(now)) {
		return nil, domain.ErrAlreadySignedIn
	}

	streak := NextStreak(user.LastSignIn, user.SignInStreak, now)
	reward := s.cfg.Reward(streak)

	user.SignInStreak = streak
	user.LastSignIn = &now
	levelUp := s.curve.Apply(user, s.cfg.Exp)

	credit := reward
	if levelUp != nil {
		credit += levelUp.Reward
	}
	balance := user.Gold
	if credit > 0 {
		if balance, err = s.ledger.Credit(ctx, tx, userID, credit); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
	}
	if err := tx.InsertSignInLog(ctx, &domain.SignInLog{UserID: userID, Reward: reward, Streak: streak, SignedInAt: now}); err != nil {
		return nil, fmt.Errorf(ErrMsgLogFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgSignedIn, "user_id", userID, "streak", streak, "reward", reward)

	exp := s.cfg.Exp
	if exp < 0 {
		exp = 0
	}
	return &domain.SignInResult{
		Reward:    reward,
		Streak:    streak,
		ExpGained: exp,
		LevelUp:   levelUp,
		GoldAfter: balance,
	}, nil
}
