package fishing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/achievement"
	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/repository/memory"
)

var testCfg = Config{Cooldown: 3 * time.Minute, Fee: 10}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *service
	store  *memory.Store
	locks  *concurrency.LockManager
	userID string
	rodID  int64
	clock  time.Time
}

// seq replays values, repeating the last one
func seq(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func newFixture(t *testing.T, gold int64, rod *domain.RodInstance) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cat := catalog.MustDefault()
	locks := concurrency.NewLockManager()
	ledger := economy.NewLedger()
	bus := event.NewMemoryBus()
	hooks := cascade.NewRunner(nil, achievement.NewEvaluator(store, cat, ledger, bus, locks))

	svc, err := NewService(store, cat, ledger, leveling.DefaultCurve(), bus, locks, hooks, testCfg)
	require.NoError(t, err)

	f := &fixture{svc: svc.(*service), store: store, locks: locks, clock: epoch}
	f.svc.now = func() time.Time { return f.clock }

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	u := &domain.User{Platform: domain.PlatformDiscord, PlatformID: "7", Username: "mo", Level: 1, FishPondCapacity: 480}
	require.NoError(t, tx.InsertUser(ctx, u))
	if gold > 0 {
		_, err = tx.CreditGold(ctx, u.ID, gold)
		require.NoError(t, err)
	}
	if rod != nil {
		rod.UserID = u.ID
		rod.IsEquipped = true
		require.NoError(t, tx.InsertRod(ctx, rod))
		f.rodID = rod.ID
	}
	require.NoError(t, tx.Commit(ctx))
	f.userID = u.ID
	return f
}

func starter() *domain.RodInstance {
	return &domain.RodInstance{TemplateID: 1, Level: 1}
}

func (f *fixture) user(t *testing.T) *domain.User {
	t.Helper()
	u, err := f.store.GetUserByID(context.Background(), f.userID)
	require.NoError(t, err)
	return u
}

func (f *fixture) update(t *testing.T, fn func(ctx context.Context, tx repository.Tx, u *domain.User)) {
	t.Helper()
	ctx := context.Background()
	tx, err := f.store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	u, err := tx.GetUserForUpdate(ctx, f.userID)
	require.NoError(t, err)
	fn(ctx, tx, u)
	require.NoError(t, tx.UpdateUser(ctx, u))
	require.NoError(t, tx.Commit(ctx))
}

func TestFish_SuccessfulCatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, starter())
	f.svc.rnd = seq(0, 0, 0) // hit, first template (Minnow), minimum weight

	res, err := f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Minnow", res.FishName)
	assert.Equal(t, int64(3), res.Value)
	assert.Equal(t, int64(10), res.ExpGained)
	assert.Equal(t, 0.02, res.WeightKg)
	require.NotNil(t, res.Catch)
	assert.Positive(t, res.Catch.ID)

	u := f.user(t)
	assert.Equal(t, int64(140), u.Gold, "fee charged, first-catch achievement paid 50")
	assert.Equal(t, int64(1), u.FishingCount)
	assert.Equal(t, int64(20), u.TotalFishWeight)
	assert.Equal(t, int64(3), u.TotalIncome)
	assert.Equal(t, int64(10), u.Exp)
	require.NotNil(t, u.LastFishingTime)
	assert.True(t, u.LastFishingTime.Equal(epoch))

	inv, err := f.store.GetInventory(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, inv.Fish, 1)
	assert.Equal(t, 20, inv.Fish[0].WeightGrams)

	require.Len(t, res.CompletedAchievements, 1)
	assert.Equal(t, "first_catch", res.CompletedAchievements[0].Key)
}

func TestFish_MissChargesFeeAndStartsCooldown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, starter())
	f.svc.rnd = seq(0.99)

	res, err := f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Nil(t, res.Catch)
	assert.Zero(t, res.ExpGained)
	assert.Empty(t, res.CompletedAchievements)

	u := f.user(t)
	assert.Equal(t, int64(90), u.Gold)
	assert.Zero(t, u.Exp)
	assert.Zero(t, u.FishingCount)
	require.NotNil(t, u.LastFishingTime)

	_, err = f.svc.Fish(ctx, f.userID)
	assert.ErrorIs(t, err, domain.ErrOnCooldown{})
}

func TestFish_CooldownScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000, starter())
	f.svc.rnd = seq(0.99)

	resolved := 0
	for i := 0; i < 6; i++ {
		_, err := f.svc.Fish(ctx, f.userID)
		if err == nil {
			resolved++
			continue
		}
		var cd domain.ErrOnCooldown
		require.ErrorAs(t, err, &cd)
		assert.Equal(t, testCfg.Cooldown, cd.Remaining)
	}
	assert.Equal(t, 1, resolved)
	assert.Equal(t, int64(990), f.user(t).Gold)

	f.clock = epoch.Add(testCfg.Cooldown)
	_, err := f.svc.Fish(ctx, f.userID)
	assert.NoError(t, err, "cooldown elapsed exactly")
}

func TestFish_EligibilityOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("cooldown before funds", func(t *testing.T) {
		f := newFixture(t, 0, starter())
		last := epoch.Add(-time.Minute)
		f.update(t, func(_ context.Context, _ repository.Tx, u *domain.User) { u.LastFishingTime = &last })

		_, err := f.svc.Fish(ctx, f.userID)
		assert.ErrorIs(t, err, domain.ErrOnCooldown{})
	})

	t.Run("funds before rod", func(t *testing.T) {
		f := newFixture(t, 5, nil)
		_, err := f.svc.Fish(ctx, f.userID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("rod before pond", func(t *testing.T) {
		f := newFixture(t, 100, nil)
		f.update(t, func(_ context.Context, _ repository.Tx, u *domain.User) { u.FishPondCapacity = 0 })
		_, err := f.svc.Fish(ctx, f.userID)
		assert.ErrorIs(t, err, domain.ErrNoRodEquipped)
	})

	t.Run("pond full", func(t *testing.T) {
		f := newFixture(t, 100, starter())
		f.update(t, func(ctx context.Context, tx repository.Tx, u *domain.User) {
			u.FishPondCapacity = 1
			require.NoError(t, tx.InsertCatch(ctx, &domain.FishCatch{UserID: u.ID, FishID: 1, WeightGrams: 30, Value: 5}))
		})
		_, err := f.svc.Fish(ctx, f.userID)
		assert.ErrorIs(t, err, domain.ErrPondFull)
		assert.Equal(t, int64(100), f.user(t).Gold, "ineligible attempts cost nothing")
	})
}

func TestFish_RodBreaksAtZeroDurability(t *testing.T) {
	ctx := context.Background()
	one := 1
	f := newFixture(t, 100, &domain.RodInstance{TemplateID: 2, Level: 1, Durability: &one})
	f.svc.rnd = seq(0.99)

	res, err := f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, res.RodBroken)

	inv, err := f.store.GetInventory(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, inv.Rods, 1)
	assert.False(t, inv.Rods[0].IsEquipped)
	assert.Equal(t, 0, *inv.Rods[0].Durability)

	f.clock = epoch.Add(time.Hour)
	_, err = f.svc.Fish(ctx, f.userID)
	assert.ErrorIs(t, err, domain.ErrNoRodEquipped)
}

func TestFish_ConsumesOneBaitPerAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, starter())
	f.svc.rnd = seq(0.99)
	baitID := 2
	f.update(t, func(ctx context.Context, tx repository.Tx, u *domain.User) {
		require.NoError(t, tx.AddBait(ctx, u.ID, baitID, 1))
		u.CurrentBaitID = &baitID
	})

	res, err := f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, res.BaitUsed)
	assert.Equal(t, baitID, *res.BaitUsed)
	assert.InDelta(t, 0.55, res.SuccessRate, 1e-9)

	inv, err := f.store.GetInventory(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, inv.Baits)
	assert.Nil(t, f.user(t).CurrentBaitID, "empty stack unequips the bait")
}

func TestFish_LevelUpPaysReward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, starter())
	f.update(t, func(_ context.Context, _ repository.Tx, u *domain.User) { u.Exp = 95 })
	f.svc.rnd = seq(0, 0, 0)

	res, err := f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelUp.FromLevel)
	assert.Equal(t, 2, res.LevelUp.ToLevel)
	assert.Equal(t, int64(50), res.LevelUp.Reward)

	u := f.user(t)
	assert.Equal(t, 2, u.Level)
	// 100 - 10 fee + 50 level reward + 50 first-catch reward
	assert.Equal(t, int64(190), u.Gold)
}

func TestAutoFish_SkipsBusyUser(t *testing.T) {
	f := newFixture(t, 100, starter())
	release := f.locks.Lock(f.userID)
	defer release()

	res, err := f.svc.AutoFish(context.Background(), f.userID)
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, int64(100), f.user(t).Gold)
}

func TestAutoFish_MarksResult(t *testing.T) {
	f := newFixture(t, 100, starter())
	f.svc.rnd = seq(0.99)

	res, err := f.svc.AutoFish(context.Background(), f.userID)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Auto)
}

func TestCooldownRemaining(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, starter())
	f.svc.rnd = seq(0.99)

	left, err := f.svc.CooldownRemaining(ctx, f.userID)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = f.svc.Fish(ctx, f.userID)
	require.NoError(t, err)
	f.clock = epoch.Add(time.Minute)

	left, err = f.svc.CooldownRemaining(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, left)
}
