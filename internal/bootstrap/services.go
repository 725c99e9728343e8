package bootstrap

import (
	"fmt"

	"github.com/osse101/FishBot_Go/internal/achievement"
	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/fishing"
	"github.com/osse101/FishBot_Go/internal/gacha"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/market"
	"github.com/osse101/FishBot_Go/internal/naming"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/signin"
	"github.com/osse101/FishBot_Go/internal/technology"
	"github.com/osse101/FishBot_Go/internal/user"
	"github.com/osse101/FishBot_Go/internal/wager"
)

// Services holds every domain service, sharing one ledger, one lock manager
// and one event bus so per-user writes serialize across features.
type Services struct {
	Store        repository.Store
	Users        user.Service
	Fishing      fishing.Service
	Gacha        gacha.Service
	Technology   technology.Service
	Achievements achievement.Evaluator
	Economy      economy.Service
	SignIn       signin.Service
	Wager        wager.Service
	Market       market.Service
	Cascade      *cascade.Runner
}

// InitializeServices wires the domain services over store and cat.
// Technology and achievements are built first because the cascade runner
// that fishing, sign-in and wagers call after each action depends on them.
func InitializeServices(cfg *config.Config, store repository.Store, cat *catalog.Catalog, bus event.Bus) (*Services, error) {
	g := cfg.Game

	ledger := economy.NewLedger()
	locks := concurrency.NewLockManager()
	curve := leveling.NewCurve(g.BaseExpConstant, g.MaxLevel, g.LevelRewardBase)

	tech := technology.NewService(store, cat, ledger, bus, locks, technology.Config{
		ChargeGoldOnAutoUnlock: g.ChargeGoldOnAutoUnlock,
		CacheSize:              cfg.UserCacheSize,
		CacheTTL:               cfg.UserCacheTTL,
	})
	ach := achievement.NewEvaluator(store, cat, ledger, bus, locks)
	hooks := cascade.NewRunner(tech, ach)

	users := user.NewService(store, cat, ledger, curve, bus, locks, user.Config{
		StartingGold:     g.StartingGold,
		StarterRodID:     g.StarterRodID,
		PondBaseCapacity: g.PondBaseCapacity,
		FishingCooldown:  g.FishingCooldown,
		Cache:            user.CacheConfig{Size: cfg.UserCacheSize, TTL: cfg.UserCacheTTL},
	})

	fish, err := fishing.NewService(store, cat, ledger, curve, bus, locks, hooks, fishing.Config{
		Cooldown: g.FishingCooldown,
		Fee:      g.FishingFee,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fishing: %w", ErrMsgCreateService, err)
	}

	draws, err := gacha.NewService(store, cat, ledger, bus, locks, hooks, gacha.Prices{
		Single: g.GachaSinglePrice,
		Ten:    g.GachaTenPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: gacha: %w", ErrMsgCreateService, err)
	}

	econ := economy.NewService(store, cat, ledger, bus, locks, economy.PondConfig{
		Capacities: g.PondUpgradeCapacities,
		Costs:      g.PondUpgradeCosts,
	})

	daily := signin.NewService(store, ledger, curve, bus, locks, hooks, signin.Config{
		BaseReward:      g.SignInBaseReward,
		StreakIncrement: g.SignInStreakIncrement,
		StreakCap:       g.SignInStreakCap,
		Exp:             g.SignInExp,
	})

	bets := wager.NewService(store, ledger, tech, bus, locks, hooks, wager.Config{
		MinStake: g.WagerMinStake,
		MaxStake: g.WagerMaxStake,
	})

	trade := market.NewService(store, cat, naming.NewResolver(cat), ledger, tech, bus, locks, market.Config{
		ListingDuration: g.MarketListingDuration,
	})

	return &Services{
		Store:        store,
		Users:        users,
		Fishing:      fish,
		Gacha:        draws,
		Technology:   tech,
		Achievements: ach,
		Economy:      econ,
		SignIn:       daily,
		Wager:        bets,
		Market:       trade,
		Cascade:      hooks,
	}, nil
}
