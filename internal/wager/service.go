// Package wager implements the wipe-bomb side game: stake gold, draw a
// weighted multiplier, get paid floor(stake x multiplier).
package wager

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/technology"
	"github.com/osse101/FishBot_Go/internal/utils"
)

// FeatureGate reports whether a user unlocked a technology
type FeatureGate interface {
	IsUnlocked(ctx context.Context, userID, techKey string) (bool, error)
}

// Config bounds the stake and optionally replaces the payout table
type Config struct {
	MinStake int64
	MaxStake int64
	Table    []Multiplier
}

// Service defines the wager operations
type Service interface {
	Wager(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error)
	Table() []Multiplier
}

type service struct {
	store   repository.Store
	ledger  *economy.Ledger
	gate    FeatureGate
	bus     event.Bus
	locks   *concurrency.LockManager
	hooks   *cascade.Runner
	cfg     Config
	weights []float64
	rnd     func() float64
	now     func() time.Time
}

// NewService creates a wager service
func NewService(store repository.Store, ledger *economy.Ledger, gate FeatureGate, bus event.Bus, locks *concurrency.LockManager, hooks *cascade.Runner, cfg Config) Service {
	if len(cfg.Table) == 0 {
		cfg.Table = DefaultTable
	}
	weights := make([]float64, len(cfg.Table))
	for i, m := range cfg.Table {
		weights[i] = m.Weight
	}
	return &service{
		store:   store,
		ledger:  ledger,
		gate:    gate,
		bus:     bus,
		locks:   locks,
		hooks:   hooks,
		cfg:     cfg,
		weights: weights,
		rnd:     utils.RandomFloat,
		now:     time.Now,
	}
}

func (s *service) Table() []Multiplier {
	out := make([]Multiplier, len(s.cfg.Table))
	copy(out, s.cfg.Table)
	return out
}

// draw picks a multiplier from the table
func (s *service) draw() float64 {
	idx := utils.WeightedIndex(s.weights, s.rnd())
	if idx < 0 {
		return 0
	}
	return s.cfg.Table[idx].Value
}

// Payout is floor(stake x multiplier)
func Payout(stake int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(stake) * multiplier))
}

func (s *service) Wager(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error) {
	if stake < s.cfg.MinStake || stake > s.cfg.MaxStake {
		return nil, fmt.Errorf("%w: "+ErrMsgStakeOutOfRange, domain.ErrInvalidInput, s.cfg.MinStake, s.cfg.MaxStake)
	}

	ok, err := s.gate.IsUnlocked(ctx, userID, technology.KeyWipeBomb)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGateCheckFailed, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTechnologyUnavailable, technology.KeyWipeBomb)
	}

	unlock := s.locks.Lock(userID)
	result, err := s.settle(ctx, userID, stake)
	unlock()
	if err != nil {
		return nil, err
	}

	event.PublishBestEffort(ctx, s.bus, event.New(event.WagerSettled, domain.WagerSettledPayload{
		UserID:     userID,
		Stake:      stake,
		Multiplier: result.Multiplier,
		Payout:     result.Payout,
	}))
	result.CompletedAchievements = s.hooks.AfterActivity(ctx, userID)
	return result, nil
}

func (s *service) settle(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	balance, err := s.ledger.Debit(ctx, tx, userID, stake)
	if err != nil {
		return nil, err
	}

	mult := s.draw()
	payout := Payout(stake, mult)
	if payout > 0 {
		if balance, err = s.ledger.Credit(ctx, tx, userID, payout); err != nil {
			return nil, err
		}
	}

	if err := tx.InsertWagerLog(ctx, &domain.WagerLog{
		UserID:     userID,
		Stake:      stake,
		Multiplier: mult,
		Payout:     payout,
		CreatedAt:  s.now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf(ErrMsgLogFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	if mult >= BigWinMultiplier {
		log.Info(LogMsgBigWin, "user_id", userID, "stake", stake, "multiplier", mult)
	} else {
		log.Debug(LogMsgWagerSettled, "user_id", userID, "stake", stake, "multiplier", mult)
	}

	return &domain.WagerResult{
		Stake:      stake,
		Multiplier: mult,
		Payout:     payout,
		Net:        payout - stake,
		GoldAfter:  balance,
	}, nil
}
