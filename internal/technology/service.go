package technology

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Config tunes the resolver
type Config struct {
	// ChargeGoldOnAutoUnlock makes sweeps debit required gold like a manual unlock.
	// Off by default: auto-unlocks are free.
	ChargeGoldOnAutoUnlock bool
	CacheSize              int
	CacheTTL               time.Duration
}

// Service resolves the technology graph for a user
type Service interface {
	List(ctx context.Context, userID string) ([]domain.TechStatus, error)
	CanUnlock(ctx context.Context, userID, techKey string) error
	Unlock(ctx context.Context, userID, techKey string) (*domain.Technology, error)
	SweepAutoUnlocks(ctx context.Context, userID string) ([]domain.Technology, error)
	IsUnlocked(ctx context.Context, userID, techKey string) (bool, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	ledger  *economy.Ledger
	bus     event.Bus
	locks   *concurrency.LockManager
	cache   *unlockedCache
	cfg     Config
	now     func() time.Time
}

// NewService creates a technology service
func NewService(store repository.Store, cat *catalog.Catalog, ledger *economy.Ledger, bus event.Bus, locks *concurrency.LockManager, cfg Config) Service {
	return &service{
		store:   store,
		catalog: cat,
		ledger:  ledger,
		bus:     bus,
		locks:   locks,
		cache:   newUnlockedCache(cfg.CacheSize, cfg.CacheTTL),
		cfg:     cfg,
		now:     time.Now,
	}
}

// unlockedSet is the read-through path for display and feature gates
func (s *service) unlockedSet(ctx context.Context, userID string) (map[int]struct{}, error) {
	if set, ok := s.cache.Get(userID); ok {
		return set, nil
	}
	ids, err := s.store.ListUserTechnologyIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListUnlockedFailed, err)
	}
	set := toSet(ids)
	s.cache.Set(userID, set)
	return set, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.TechStatus, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	techs := s.catalog.Technologies()
	out := make([]domain.TechStatus, 0, len(techs))
	for i := range techs {
		st := domain.TechStatus{Technology: techs[i]}
		if _, ok := unlocked[techs[i].ID]; ok {
			st.Unlocked = true
		} else if err := check(s.catalog, &techs[i], user, unlocked, false); err != nil {
			st.Blockers = []string{err.Error()}
		} else {
			st.CanUnlock = true
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *service) CanUnlock(ctx context.Context, userID, techKey string) error {
	tech, err := s.catalog.TechnologyByKey(techKey)
	if err != nil {
		return err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	unlocked, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return err
	}
	return check(s.catalog, tech, user, unlocked, false)
}

func (s *service) IsUnlocked(ctx context.Context, userID, techKey string) (bool, error) {
	tech, err := s.catalog.TechnologyByKey(techKey)
	if err != nil {
		return false, err
	}
	unlocked, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := unlocked[tech.ID]
	return ok, nil
}

// Unlock is the manual path: every requirement is re-validated under the user
// lock and the required gold is debited conditionally.
func (s *service) Unlock(ctx context.Context, userID, techKey string) (*domain.Technology, error) {
	log := logger.FromContext(ctx)

	tech, err := s.catalog.TechnologyByKey(techKey)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	ids, err := tx.ListUserTechnologiesTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListUnlockedFailed, err)
	}
	if err := check(s.catalog, tech, user, toSet(ids), false); err != nil {
		return nil, err
	}

	if tech.RequiredGold > 0 {
		if _, err := s.ledger.Debit(ctx, tx, userID, tech.RequiredGold); err != nil {
			return nil, err
		}
	}

	inserted, err := tx.InsertUserTechnology(ctx, userID, tech.ID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRecordUnlockFailed, tech.Key, err)
	}
	if !inserted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, tech.DisplayName)
	}

	if applyEffect(user, tech) {
		if err := tx.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	s.cache.Invalidate(userID)

	log.Info(LogMsgUnlocked, "user_id", userID, "tech", tech.Key, "cost", tech.RequiredGold)
	event.PublishBestEffort(ctx, s.bus, event.New(event.TechnologyUnlocked, domain.TechnologyUnlockedPayload{
		UserID: userID, TechKey: tech.Key,
	}))
	return tech, nil
}

// SweepAutoUnlocks unlocks everything whose level and prerequisites hold,
// repeating until nothing new qualifies. Gold is only charged when configured.
func (s *service) SweepAutoUnlocks(ctx context.Context, userID string) ([]domain.Technology, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	ids, err := tx.ListUserTechnologiesTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListUnlockedFailed, err)
	}
	unlocked := toSet(ids)

	now := s.now().UTC()
	var gained []domain.Technology
	userChanged := false
	for {
		batch := pending(s.catalog, user, unlocked, s.cfg.ChargeGoldOnAutoUnlock)
		progressed := false
		for i := range batch {
			tech := &batch[i]
			if s.cfg.ChargeGoldOnAutoUnlock && tech.RequiredGold > 0 {
				if user.Gold < tech.RequiredGold {
					continue
				}
				bal, err := s.ledger.Debit(ctx, tx, userID, tech.RequiredGold)
				if err != nil {
					return nil, err
				}
				user.Gold = bal
			}

			inserted, err := tx.InsertUserTechnology(ctx, userID, tech.ID, now)
			if err != nil {
				return nil, fmt.Errorf(ErrMsgRecordUnlockFailed, tech.Key, err)
			}
			unlocked[tech.ID] = struct{}{}
			progressed = true
			if !inserted {
				continue
			}
			if applyEffect(user, tech) {
				userChanged = true
			}
			gained = append(gained, *tech)
		}
		if !progressed {
			break
		}
	}

	if len(gained) == 0 {
		return nil, nil
	}
	if userChanged {
		if err := tx.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateUserFailed, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	s.cache.Invalidate(userID)

	for _, t := range gained {
		log.Info(LogMsgAutoUnlocked, "user_id", userID, "tech", t.Key)
		event.PublishBestEffort(ctx, s.bus, event.New(event.TechnologyUnlocked, domain.TechnologyUnlockedPayload{
			UserID: userID, TechKey: t.Key, Auto: true,
		}))
	}
	log.Debug(LogMsgSweepFinished, "user_id", userID, "unlocked", len(gained))
	return gained, nil
}
