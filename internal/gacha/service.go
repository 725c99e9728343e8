package gacha

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
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/utils"
)

// Prices are the fixed costs of a paid request
type Prices struct {
	Single int64
	Ten    int64
}

// Service defines the paid draw interface
type Service interface {
	Pools() []domain.GachaPool
	DrawSingle(ctx context.Context, userID string, poolID int) (*domain.GachaResult, error)
	DrawTen(ctx context.Context, userID string, poolID int) (*domain.GachaResult, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	drawer  *Drawer
	ledger  *economy.Ledger
	bus     event.Bus
	locks   *concurrency.LockManager
	hooks   *cascade.Runner
	prices  Prices
	rnd     func() float64
	now     func() time.Time
}

// NewService creates a gacha service over every pool in the catalog
func NewService(store repository.Store, cat *catalog.Catalog, ledger *economy.Ledger, bus event.Bus, locks *concurrency.LockManager, hooks *cascade.Runner, prices Prices) (Service, error) {
	drawer, err := NewDrawer(cat)
	if err != nil {
		return nil, err
	}
	return &service{
		store:   store,
		catalog: cat,
		drawer:  drawer,
		ledger:  ledger,
		bus:     bus,
		locks:   locks,
		hooks:   hooks,
		prices:  prices,
		rnd:     utils.RandomFloat,
		now:     time.Now,
	}, nil
}

func (s *service) Pools() []domain.GachaPool {
	return s.catalog.Pools()
}

func (s *service) DrawSingle(ctx context.Context, userID string, poolID int) (*domain.GachaResult, error) {
	return s.draw(ctx, userID, poolID, SingleDrawCount, s.prices.Single)
}

func (s *service) DrawTen(ctx context.Context, userID string, poolID int) (*domain.GachaResult, error) {
	return s.draw(ctx, userID, poolID, TenDrawCount, s.prices.Ten)
}

// draw runs the paid request under the user lock, then evaluates achievements
// for the newly owned items once the lock is released.
func (s *service) draw(ctx context.Context, userID string, poolID, count int, price int64) (*domain.GachaResult, error) {
	if _, err := s.catalog.Pool(poolID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	result, err := s.settle(ctx, userID, poolID, count, price)
	unlock()
	if err != nil {
		return nil, err
	}

	rarities := make([]int, len(result.Draws))
	for i, d := range result.Draws {
		rarities[i] = d.Rarity
	}
	event.PublishBestEffort(ctx, s.bus, event.New(event.GachaDrawn, domain.GachaDrawnPayload{
		UserID: userID, PoolID: poolID, Rarities: rarities, Cost: price,
	}))

	result.CompletedAchievements = s.hooks.AfterActivity(ctx, userID)
	return result, nil
}

// settle charges the price first; a failed debit aborts before anything is rolled.
// Everything after the debit shares the same transaction.
func (s *service) settle(ctx context.Context, userID string, poolID, count int, price int64) (*domain.GachaResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	balance, err := s.ledger.Debit(ctx, tx, userID, price)
	if err != nil {
		return nil, err
	}

	draws, err := s.drawer.DrawN(poolID, count, s.rnd)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	logs := make([]domain.GachaLog, 0, len(draws))
	for i := range draws {
		if err := s.grant(ctx, tx, userID, &draws[i], now); err != nil {
			return nil, err
		}
		logs = append(logs, domain.GachaLog{
			UserID:     userID,
			PoolID:     poolID,
			ItemType:   draws[i].ItemType,
			TemplateID: draws[i].TemplateID,
			Rarity:     draws[i].Rarity,
			DrawnAt:    now,
		})
	}
	if len(logs) > 0 {
		if err := tx.InsertGachaLogs(ctx, logs); err != nil {
			return nil, fmt.Errorf(ErrMsgLogFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	if len(draws) < count {
		log.Debug(LogMsgEmptyDraws, "user_id", userID, "pool_id", poolID, "empty", count-len(draws))
	}
	log.Info(LogMsgDrawCompleted, "user_id", userID, "pool_id", poolID, "count", count, "won", len(draws), "cost", price)

	return &domain.GachaResult{PoolID: poolID, Cost: price, Draws: draws, GoldAfter: balance}, nil
}

// grant materializes one draw into the user's inventory
func (s *service) grant(ctx context.Context, tx repository.Tx, userID string, d *domain.GachaDraw, now time.Time) error {
	switch d.ItemType {
	case domain.ItemTypeRod:
		durability := GachaRodDurability
		rod := &domain.RodInstance{
			UserID:     userID,
			TemplateID: d.TemplateID,
			Level:      1,
			Durability: &durability,
			ObtainedAt: now,
		}
		if err := tx.InsertRod(ctx, rod); err != nil {
			return fmt.Errorf(ErrMsgGrantFailed, d.ItemType, d.TemplateID, err)
		}
		d.InstanceID = rod.ID
	case domain.ItemTypeAccessory:
		acc := &domain.AccessoryInstance{UserID: userID, TemplateID: d.TemplateID, ObtainedAt: now}
		if err := tx.InsertAccessory(ctx, acc); err != nil {
			return fmt.Errorf(ErrMsgGrantFailed, d.ItemType, d.TemplateID, err)
		}
		d.InstanceID = acc.ID
	case domain.ItemTypeBait:
		if err := tx.AddBait(ctx, userID, d.TemplateID, 1); err != nil {
			return fmt.Errorf(ErrMsgGrantFailed, d.ItemType, d.TemplateID, err)
		}
	}
	return nil
}
