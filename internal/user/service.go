package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Config carries the registration grants and display rules
type Config struct {
	StartingGold     int64
	StarterRodID     int
	PondBaseCapacity int
	FishingCooldown  time.Duration
	Cache            CacheConfig
}

// Service defines the interface for user operations
type Service interface {
	// Register creates the user on first contact. created is false when the
	// (platform, platform_id) pair already existed.
	Register(ctx context.Context, platform, platformID, username string) (user *domain.User, created bool, err error)
	Resolve(ctx context.Context, platform, platformID string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	Inventory(ctx context.Context, userID string) (*domain.Inventory, error)
	Profile(ctx context.Context, userID string) (*domain.Profile, error)

	EquipRod(ctx context.Context, userID string, rodID int64) error
	EquipAccessory(ctx context.Context, userID string, accID int64) error
	EquipBait(ctx context.Context, userID string, baitID int) error

	Titles(ctx context.Context, userID string) ([]domain.Title, error)
	SetTitle(ctx context.Context, userID string, titleID int) error

	SetAutoFishing(ctx context.Context, userID string, enabled bool) error
	GetCacheStats() CacheStats
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	ledger  *economy.Ledger
	curve   leveling.Curve
	bus     event.Bus
	locks   *concurrency.LockManager
	cache   *idCache
	cfg     Config
	now     func() time.Time
}

// NewService creates a new user service
func NewService(store repository.Store, cat *catalog.Catalog, ledger *economy.Ledger, curve leveling.Curve, bus event.Bus, locks *concurrency.LockManager, cfg Config) Service {
	return &service{
		store:   store,
		catalog: cat,
		ledger:  ledger,
		curve:   curve,
		bus:     bus,
		locks:   locks,
		cache:   newIDCache(cfg.Cache),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}

func validateIdentity(platform, platformID string) error {
	if !domain.ValidPlatforms[platform] {
		return fmt.Errorf(ErrMsgInvalidPlatformFmt, domain.ErrInvalidPlatform, platform)
	}
	if strings.TrimSpace(platformID) == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyPlatformID)
	}
	return nil
}

func (s *service) Register(ctx context.Context, platform, platformID, username string) (*domain.User, bool, error) {
	log := logger.FromContext(ctx)

	if err := validateIdentity(platform, platformID); err != nil {
		return nil, false, err
	}
	if existing, err := s.Resolve(ctx, platform, platformID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	starter, err := s.catalog.Rod(s.cfg.StarterRodID)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgStarterRodFailed, err)
	}

	unlock := s.locks.Lock(cacheKey(platform, platformID))
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	now := s.now().UTC()
	user := &domain.User{
		Platform:         platform,
		PlatformID:       platformID,
		Username:         username,
		Level:            1,
		FishPondCapacity: s.cfg.PondBaseCapacity,
		CreatedAt:        now,
	}
	if err := tx.InsertUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			repository.SafeRollback(ctx, tx)
			existing, rerr := s.Resolve(ctx, platform, platformID)
			if rerr != nil {
				return nil, false, rerr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf(ErrMsgInsertUserFailed, err)
	}

	if s.cfg.StartingGold > 0 {
		bal, err := s.ledger.Credit(ctx, tx, user.ID, s.cfg.StartingGold)
		if err != nil {
			return nil, false, fmt.Errorf(ErrMsgStartingGoldFailed, err)
		}
		user.Gold = bal
	}

	rod := economy.NewRodInstance(user.ID, starter, now)
	rod.IsEquipped = true
	if err := tx.InsertRod(ctx, rod); err != nil {
		return nil, false, fmt.Errorf(ErrMsgStarterRodFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	s.cache.Set(platform, platformID, user.ID)

	log.Info(LogMsgUserRegistered, "user_id", user.ID, "platform", platform, "username", username)
	event.PublishBestEffort(ctx, s.bus, event.New(event.UserRegistered, domain.UserRegisteredPayload{
		UserID: user.ID, Platform: platform,
	}))
	return user, true, nil
}

func (s *service) Resolve(ctx context.Context, platform, platformID string) (*domain.User, error) {
	if id, ok := s.cache.Get(platform, platformID); ok {
		u, err := s.store.GetUserByID(ctx, id)
		if err == nil {
			return u, nil
		}
		s.cache.Invalidate(platform, platformID)
	}
	u, err := s.store.GetUserByPlatformID(ctx, platform, platformID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(platform, platformID, u.ID)
	return u, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *service) Inventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetInventory(ctx, userID)
}

// SetAutoFishing is an admin override of the technology-granted flag
func (s *service) SetAutoFishing(ctx context.Context, userID string, enabled bool) error {
	err := s.mutateUser(ctx, userID, func(_ repository.Tx, u *domain.User) error {
		u.AutoFishing = enabled
		return nil
	})
	if err == nil {
		logger.FromContext(ctx).Info(LogMsgAutoFishingSet, "user_id", userID, "enabled", enabled)
	}
	return err
}

// mutateUser runs fn against the locked user row and persists the result
func (s *service) mutateUser(ctx context.Context, userID string, fn func(tx repository.Tx, u *domain.User) error) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	u, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	if err := fn(tx, u); err != nil {
		return err
	}
	if err := tx.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf(ErrMsgUpdateUserFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}
