package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/database"
	"github.com/osse101/FishBot_Go/internal/database/dbtest"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/leveling"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/user"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		ctx := context.Background()
		connStr, stop, err := dbtest.StartPostgres(ctx)
		if err != nil {
			fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		} else {
			terminate = stop
			testPool, err = database.NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
			if err == nil {
				_, err = database.Migrate(ctx, testPool)
			}
			if err != nil {
				fmt.Printf("WARNING: Failed to prepare database: %v\n", err)
				testPool = nil
			}
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return NewStore(testPool)
}

var userSeq int

func insertUser(t *testing.T, s *Store, gold int64) string {
	t.Helper()
	ctx := context.Background()
	userSeq++
	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	u := &domain.User{Platform: domain.PlatformDiscord, PlatformID: fmt.Sprintf("it-%d-%d", time.Now().UnixNano(), userSeq),
		Username: "it", Level: 1, FishPondCapacity: 480}
	require.NoError(t, tx.InsertUser(ctx, u))
	if gold > 0 {
		_, err = tx.CreditGold(ctx, u.ID, gold)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))
	return u.ID
}

func inTx(t *testing.T, s *Store, fn func(tx repository.Tx)) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	fn(tx)
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)

	inTx(t, s, func(tx repository.Tx) {
		u, err := tx.GetUserForUpdate(ctx, id)
		require.NoError(t, err)
		now := time.Now().UTC().Truncate(time.Microsecond)
		bait := 2
		u.Exp, u.Level, u.LastFishingTime, u.CurrentBaitID, u.AutoFishing = 450, 3, &now, &bait, true
		require.NoError(t, tx.UpdateUser(ctx, u))
	})

	u, err := s.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(450), u.Exp)
	assert.Equal(t, 3, u.Level)
	require.NotNil(t, u.CurrentBaitID)
	assert.Equal(t, 2, *u.CurrentBaitID)
	require.NotNil(t, u.LastFishingTime)

	ids, err := s.ListAutoFishingUserIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_DuplicatePlatformID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)
	u, err := s.GetUserByID(ctx, id)
	require.NoError(t, err)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	err = tx.InsertUser(ctx, &domain.User{Platform: u.Platform, PlatformID: u.PlatformID, Username: "dup", FishPondCapacity: 1})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestStore_ConditionalDebit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.BeginTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer repository.SafeRollback(ctx, tx)
			if _, err := tx.DebitGold(ctx, id, 30); err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
				return
			}
			if assert.NoError(t, tx.Commit(ctx)) {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	u, err := s.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), u.Gold)
}

func TestStore_EquipSlotInvariant(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)
	other := insertUser(t, s, 0)

	var first, second int64
	inTx(t, s, func(tx repository.Tx) {
		a := &domain.RodInstance{UserID: id, TemplateID: 1, Level: 1, IsEquipped: true}
		require.NoError(t, tx.InsertRod(ctx, a))
		b := &domain.RodInstance{UserID: id, TemplateID: 2, Level: 1}
		require.NoError(t, tx.InsertRod(ctx, b))
		first, second = a.ID, b.ID
	})

	inTx(t, s, func(tx repository.Tx) {
		require.NoError(t, tx.EquipRod(ctx, id, second))
		eq, err := tx.GetEquippedRod(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, eq)
		assert.Equal(t, second, eq.ID)
		assert.ErrorIs(t, tx.EquipRod(ctx, other, first), domain.ErrNotOwned)
	})

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	err = tx.InsertRod(ctx, &domain.RodInstance{UserID: id, TemplateID: 1, Level: 1, IsEquipped: true})
	assert.ErrorIs(t, err, domain.ErrAlreadyEquipped)
}

func TestStore_BaitStack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)

	inTx(t, s, func(tx repository.Tx) {
		require.NoError(t, tx.AddBait(ctx, id, 1, 2))
		require.NoError(t, tx.AddBait(ctx, id, 1, 1))
		left, err := tx.ConsumeBait(ctx, id, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, left)
		left, err = tx.ConsumeBait(ctx, id, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, left)
		_, err = tx.ConsumeBait(ctx, id, 1, 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientBait)
	})

	inv, err := s.GetInventory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, inv.Baits, "emptied stacks are removed")
}

func TestStore_LogAggregates(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)
	now := time.Now().UTC()
	minnow, salmon := 1, 8

	inTx(t, s, func(tx repository.Tx) {
		for _, l := range []domain.FishingLog{
			{UserID: id, FishID: &minnow, Success: true, WeightGrams: 40, CreatedAt: now},
			{UserID: id, FishID: &minnow, Success: true, WeightGrams: 60, CreatedAt: now},
			{UserID: id, FishID: &salmon, Success: true, WeightGrams: 5000, CreatedAt: now},
			{UserID: id, Success: false, CreatedAt: now},
		} {
			l := l
			require.NoError(t, tx.InsertFishingLog(ctx, &l))
		}
		require.NoError(t, tx.InsertWagerLog(ctx, &domain.WagerLog{UserID: id, Stake: 10, Multiplier: 2.5, Payout: 25, CreatedAt: now}))
		require.NoError(t, tx.InsertGachaLogs(ctx, []domain.GachaLog{
			{UserID: id, PoolID: 1, ItemType: domain.ItemTypeRod, TemplateID: 9, Rarity: 1, DrawnAt: now},
			{UserID: id, PoolID: 1, ItemType: domain.ItemTypeBait, TemplateID: 1, Rarity: 1, DrawnAt: now},
		}))

		counts, err := tx.CatchCountsByFish(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, map[int]int64{1: 2, 8: 1}, counts)

		w, err := tx.MaxCatchWeight(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5000, w)

		m, err := tx.MaxWagerMultiplier(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2.5, m)
	})
}

func TestStore_UnlocksAreIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := insertUser(t, s, 0)

	inTx(t, s, func(tx repository.Tx) {
		created, err := tx.InsertUserTechnology(ctx, id, 1, time.Now())
		require.NoError(t, err)
		assert.True(t, created)
		created, err = tx.InsertUserTechnology(ctx, id, 1, time.Now())
		require.NoError(t, err)
		assert.False(t, created)

		granted, err := tx.InsertTitle(ctx, id, 3)
		require.NoError(t, err)
		assert.True(t, granted)
		granted, err = tx.InsertTitle(ctx, id, 3)
		require.NoError(t, err)
		assert.False(t, granted)

		now := time.Now().UTC()
		require.NoError(t, tx.UpsertAchievementProgress(ctx, &domain.AchievementProgress{UserID: id, AchievementID: 1, Progress: 1}))
		require.NoError(t, tx.UpsertAchievementProgress(ctx, &domain.AchievementProgress{UserID: id, AchievementID: 1, Progress: 1, Completed: true, CompletedAt: &now}))
	})

	techs, err := s.ListUserTechnologyIDs(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, techs)

	progress, err := s.ListAchievementProgress(ctx, id)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.True(t, progress[0].Completed)
}

func TestStore_MarketPurchaseHonoursExpiry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seller := insertUser(t, s, 0)
	now := time.Now().UTC()

	var live, stale domain.MarketListing
	inTx(t, s, func(tx repository.Tx) {
		r1 := &domain.RodInstance{UserID: seller, TemplateID: 2, Level: 1}
		require.NoError(t, tx.InsertRod(ctx, r1))
		r2 := &domain.RodInstance{UserID: seller, TemplateID: 3, Level: 1}
		require.NoError(t, tx.InsertRod(ctx, r2))
		require.NoError(t, tx.SetListed(ctx, domain.ItemTypeRod, r1.ID, true))
		require.NoError(t, tx.SetListed(ctx, domain.ItemTypeRod, r2.ID, true))

		live = domain.MarketListing{SellerID: seller, ItemType: domain.ItemTypeRod, InstanceID: r1.ID, TemplateID: 2,
			Price: 100, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		stale = domain.MarketListing{SellerID: seller, ItemType: domain.ItemTypeRod, InstanceID: r2.ID, TemplateID: 3,
			Price: 50, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
		require.NoError(t, tx.InsertListing(ctx, &live))
		require.NoError(t, tx.InsertListing(ctx, &stale))
	})

	got, err := s.BrowseListings(ctx, domain.MarketFilter{SellerID: seller}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	_, err = tx.GetListingForPurchase(ctx, stale.ID, now)
	assert.ErrorIs(t, err, domain.ErrListingExpired)
	_, err = tx.GetListingForPurchase(ctx, -1, now)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	l, err := tx.GetListingForPurchase(ctx, live.ID, now)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemTypeRod, l.ItemType)

	claimed, err := tx.ClaimExpiredListings(ctx, now, 100)
	require.NoError(t, err)
	var ids []int64
	for _, c := range claimed {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, stale.ID)
	assert.NotContains(t, ids, live.ID)
}

// TestUserService_RegistrationOnPostgres runs the registration scenario end to end
func TestUserService_RegistrationOnPostgres(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	svc := user.NewService(s, catalog.MustDefault(), economy.NewLedger(), leveling.DefaultCurve(),
		event.NewMemoryBus(), concurrency.NewLockManager(), user.Config{
			StartingGold: 200, StarterRodID: 1, PondBaseCapacity: 480, FishingCooldown: 3 * time.Minute,
		})

	pid := fmt.Sprintf("reg-%d", time.Now().UnixNano())
	u, created, err := svc.Register(ctx, domain.PlatformDiscord, pid, "newbie")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(200), u.Gold)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, int64(0), u.Exp)

	again, created, err := svc.Register(ctx, domain.PlatformDiscord, pid, "newbie")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)

	inv, err := s.GetInventory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, inv.Rods, 1)
	assert.True(t, inv.Rods[0].IsEquipped)
}
