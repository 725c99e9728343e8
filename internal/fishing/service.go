package fishing

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/utils"
)

// Config holds the per-attempt rules
type Config struct {
	Cooldown time.Duration
	Fee      int64
}

// Service runs fishing attempts
type Service interface {
	Fish(ctx context.Context, userID string) (*domain.FishingResult, error)
	// AutoFish is the scheduler path. It returns nil, nil when the user is
	// busy with another command.
	AutoFish(ctx context.Context, userID string) (*domain.FishingResult, error)
	CooldownRemaining(ctx context.Context, userID string) (time.Duration, error)
}

type service struct {
	store    repository.Store
	catalog  *catalog.Catalog
	resolver *Resolver
	ledger   *economy.Ledger
	curve    leveling.Curve
	bus      event.Bus
	locks    *concurrency.LockManager
	hooks    *cascade.Runner
	cfg      Config
	rnd      func() float64
	now      func() time.Time
}

// NewService creates a fishing service
func NewService(store repository.Store, cat *catalog.Catalog, ledger *economy.Ledger, curve leveling.Curve, bus event.Bus, locks *concurrency.LockManager, hooks *cascade.Runner, cfg Config) (Service, error) {
	resolver, err := NewResolver(cat)
	if err != nil {
		return nil, err
	}
	return &service{
		store:    store,
		catalog:  cat,
		resolver: resolver,
		ledger:   ledger,
		curve:    curve,
		bus:      bus,
		locks:    locks,
		hooks:    hooks,
		cfg:      cfg,
		rnd:      utils.RandomFloat,
		now:      time.Now,
	}, nil
}

func (s *service) Fish(ctx context.Context, userID string) (*domain.FishingResult, error) {
	unlock := s.locks.Lock(userID)
	result, err := s.attempt(ctx, userID, false)
	unlock()
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, userID, result)
	return result, nil
}

func (s *service) AutoFish(ctx context.Context, userID string) (*domain.FishingResult, error) {
	unlock, ok := s.locks.TryLock(userID)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgAutoSkip, "user_id", userID, "reason", "busy")
		return nil, nil
	}
	result, err := s.attempt(ctx, userID, true)
	unlock()
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, userID, result)
	return result, nil
}

func (s *service) CooldownRemaining(ctx context.Context, userID string) (time.Duration, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return remaining(user, s.cfg.Cooldown, s.now()), nil
}

func remaining(user *domain.User, cooldown time.Duration, now time.Time) time.Duration {
	if user.LastFishingTime == nil {
		return 0
	}
	left := cooldown - now.Sub(*user.LastFishingTime)
	if left < 0 {
		return 0
	}
	return left
}

// afterCommit publishes events and runs the follow-up hooks outside the user lock
func (s *service) afterCommit(ctx context.Context, userID string, result *domain.FishingResult) {
	payload := domain.FishingCompletedPayload{UserID: userID, Success: result.Success, Auto: result.Auto}
	if result.Success {
		payload.Rarity = result.Rarity
		payload.Value = result.Value
	}
	event.PublishBestEffort(ctx, s.bus, event.New(event.FishingCompleted, payload))

	if result.LevelUp != nil {
		event.PublishBestEffort(ctx, s.bus, event.New(event.LevelUp, domain.LevelUpPayload{
			UserID: userID, LevelUp: *result.LevelUp,
		}))
	}

	if result.Success {
		result.UnlockedTechnologies, result.CompletedAchievements = s.hooks.AfterProgress(ctx, userID)
	}
}

// equipment resolves the user's gear inside the transaction. The rod is required.
func (s *service) equipment(ctx context.Context, tx repository.Tx, user *domain.User) (*domain.Equipment, error) {
	rod, err := tx.GetEquippedRod(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEquipmentFailed, err)
	}
	if rod == nil {
		return nil, domain.ErrNoRodEquipped
	}
	rodTpl, err := s.catalog.Rod(rod.TemplateID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRodTemplateFailed, err)
	}
	eq := &domain.Equipment{Rod: rod, RodTpl: rodTpl}

	acc, err := tx.GetEquippedAccessory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEquipmentFailed, err)
	}
	if acc != nil {
		if tpl, err := s.catalog.Accessory(acc.TemplateID); err == nil {
			eq.Accessory, eq.AccTpl = acc, tpl
		}
	}

	if user.CurrentBaitID != nil {
		qty, err := tx.GetBaitQuantity(ctx, user.ID, *user.CurrentBaitID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgEquipmentFailed, err)
		}
		if tpl, err := s.catalog.Bait(*user.CurrentBaitID); err == nil && qty > 0 {
			eq.Bait, eq.BaitCount = tpl, qty
		} else {
			user.CurrentBaitID = nil
		}
	}
	return eq, nil
}

// attempt runs one eligible attempt in a single transaction. The caller holds the user lock.
func (s *service) attempt(ctx context.Context, userID string, auto bool) (*domain.FishingResult, error) {
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

	// Eligibility: cooldown, fee, rod, pond space
	if left := remaining(user, s.cfg.Cooldown, now); left > 0 {
		return nil, domain.ErrOnCooldown{Action: ActionFishing, Remaining: left}
	}
	if user.Gold < s.cfg.Fee {
		return nil, fmt.Errorf(ErrMsgFeeFmt, domain.ErrInsufficientFunds, s.cfg.Fee, user.Gold)
	}
	eq, err := s.equipment(ctx, tx, user)
	if err != nil {
		return nil, err
	}
	pond, err := tx.CountPond(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEquipmentFailed, err)
	}
	if pond >= user.FishPondCapacity {
		return nil, fmt.Errorf(ErrMsgPondFullFmt, domain.ErrPondFull, pond, user.FishPondCapacity)
	}

	result := &domain.FishingResult{Fee: s.cfg.Fee, Auto: auto}

	if s.cfg.Fee > 0 {
		if _, err := s.ledger.Debit(ctx, tx, userID, s.cfg.Fee); err != nil {
			return nil, err
		}
	}

	// The roll sees the gear as it was when the cast started
	outcome := s.resolver.Roll(eq, user.Level, s.rnd)
	result.SuccessRate = outcome.SuccessRate

	if eq.Bait != nil {
		left, err := tx.ConsumeBait(ctx, userID, eq.Bait.ID, 1)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgBaitFailed, err)
		}
		used := eq.Bait.ID
		result.BaitUsed = &used
		if left == 0 {
			user.CurrentBaitID = nil
		}
	}

	if eq.Rod.Durability != nil {
		d := *eq.Rod.Durability - 1
		if d <= 0 {
			d = 0
			result.RodBroken = true
		}
		if err := tx.UpdateRodDurability(ctx, eq.Rod.ID, &d); err != nil {
			return nil, fmt.Errorf(ErrMsgDurabilityFailed, err)
		}
		if result.RodBroken {
			if err := tx.UnequipRod(ctx, userID); err != nil {
				return nil, fmt.Errorf(ErrMsgDurabilityFailed, err)
			}
		}
	}

	user.LastFishingTime = &now
	fishLog := &domain.FishingLog{UserID: userID, Fee: s.cfg.Fee, Auto: auto, CreatedAt: now}

	if outcome.Success {
		catch := &domain.FishCatch{
			UserID:      userID,
			FishID:      outcome.Fish.ID,
			WeightGrams: outcome.WeightGrams,
			Value:       outcome.Value,
			CaughtAt:    now,
		}
		if err := tx.InsertCatch(ctx, catch); err != nil {
			return nil, fmt.Errorf(ErrMsgCatchFailed, err)
		}

		user.FishingCount++
		user.TotalFishWeight += int64(outcome.WeightGrams)
		user.TotalIncome += outcome.Value
		levelUp := s.curve.Apply(user, outcome.Exp)
		if levelUp != nil && levelUp.Reward > 0 {
			if _, err := s.ledger.Credit(ctx, tx, userID, levelUp.Reward); err != nil {
				return nil, fmt.Errorf(ErrMsgRewardFailed, err)
			}
		}

		fishID := outcome.Fish.ID
		fishLog.FishID = &fishID
		fishLog.Success = true
		fishLog.WeightGrams = outcome.WeightGrams
		fishLog.Value = outcome.Value
		fishLog.ExpGained = outcome.Exp

		result.Success = true
		result.Catch = catch
		result.FishName = outcome.Fish.Name
		result.Rarity = outcome.Fish.Rarity
		result.WeightKg = float64(outcome.WeightGrams) / 1000
		result.Value = outcome.Value
		result.ElementBonus = outcome.ElementBonus
		result.ExpGained = outcome.Exp
		result.LevelUp = levelUp
	}

	if err := tx.InsertFishingLog(ctx, fishLog); err != nil {
		return nil, fmt.Errorf(ErrMsgLogFailed, err)
	}
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	if result.Success {
		log.Info(LogMsgCatch, "user_id", userID, "fish", result.FishName, "rarity", result.Rarity,
			"weight_g", outcome.WeightGrams, "value", result.Value, "exp", result.ExpGained, "auto", auto)
	} else {
		log.Info(LogMsgMiss, "user_id", userID, "rate", result.SuccessRate, "auto", auto)
	}
	if result.RodBroken {
		log.Info(LogMsgRodBroken, "user_id", userID, "rod_id", eq.Rod.ID)
	}
	if result.LevelUp != nil {
		log.Info(LogMsgLevelUp, "user_id", userID, "from", result.LevelUp.FromLevel, "to", result.LevelUp.ToLevel, "reward", result.LevelUp.Reward)
	}
	return result, nil
}
