package economy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/repository/memory"
)

var testPond = PondConfig{Capacities: []int{999, 9999}, Costs: []int64{500, 5000}}

func setup(t *testing.T, gold int64) (*service, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store, catalog.MustDefault(), NewLedger(), event.NewMemoryBus(), concurrency.NewLockManager(), testPond).(*service)

	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	u := &domain.User{Platform: domain.PlatformDiscord, PlatformID: "1", Username: "ann", Level: 1, FishPondCapacity: 480}
	require.NoError(t, tx.InsertUser(ctx, u))
	if gold > 0 {
		_, err = tx.CreditGold(ctx, u.ID, gold)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))
	return svc, store, u.ID
}

func addCatches(t *testing.T, store *memory.Store, userID string, catches ...domain.FishCatch) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	for i := range catches {
		catches[i].UserID = userID
		require.NoError(t, tx.InsertCatch(ctx, &catches[i]))
	}
	require.NoError(t, tx.Commit(ctx))
}

func TestLedger_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	l := NewLedger()
	_, err = l.Credit(ctx, tx, "u", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = l.Debit(ctx, tx, "u", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = l.CreditPremium(ctx, tx, "u", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_ConcurrentDebitsAtomic(t *testing.T) {
	svc, store, id := setup(t, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := store.BeginTx(ctx)
			require.NoError(t, err)
			defer repository.SafeRollback(ctx, tx)
			if _, err := svc.ledger.Debit(ctx, tx, id, 30); err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
				return
			}
			require.NoError(t, tx.Commit(ctx))
			mu.Lock()
			ok++
			mu.Unlock()
		}()
	}
	wg.Wait()

	u, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, ok)
	assert.Equal(t, int64(10), u.Gold)
}

func TestBuy(t *testing.T) {
	ctx := context.Background()

	t.Run("rod from shop", func(t *testing.T) {
		svc, store, id := setup(t, 600)
		res, err := svc.Buy(ctx, id, domain.ItemTypeRod, 2, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Quantity, "rods are bought singly")
		assert.Equal(t, int64(500), res.Cost)
		assert.Equal(t, int64(100), res.GoldAfter)

		inv, err := store.GetInventory(ctx, id)
		require.NoError(t, err)
		require.Len(t, inv.Rods, 1)
		assert.Equal(t, 1, inv.Rods[0].Level)
		require.NotNil(t, inv.Rods[0].Durability)
		assert.Equal(t, 200, *inv.Rods[0].Durability)
		assert.False(t, inv.Rods[0].IsEquipped)
	})

	t.Run("bait stack", func(t *testing.T) {
		svc, store, id := setup(t, 100)
		res, err := svc.Buy(ctx, id, domain.ItemTypeBait, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(60), res.Cost)

		inv, err := store.GetInventory(ctx, id)
		require.NoError(t, err)
		require.Len(t, inv.Baits, 1)
		assert.Equal(t, 3, inv.Baits[0].Quantity)
	})

	t.Run("gacha-only rod is not buyable", func(t *testing.T) {
		svc, _, id := setup(t, 100000)
		_, err := svc.Buy(ctx, id, domain.ItemTypeRod, 8, 1)
		assert.ErrorIs(t, err, domain.ErrNotBuyable)
	})

	t.Run("insufficient funds leaves no side effects", func(t *testing.T) {
		svc, store, id := setup(t, 10)
		_, err := svc.Buy(ctx, id, domain.ItemTypeAccessory, 1, 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		inv, err := store.GetInventory(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, inv.Accessories)
		u, _ := store.GetUserByID(ctx, id)
		assert.Equal(t, int64(10), u.Gold)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		svc, _, id := setup(t, 100)
		_, err := svc.Buy(ctx, id, domain.ItemTypeBait, 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown template", func(t *testing.T) {
		svc, _, id := setup(t, 100)
		_, err := svc.Buy(ctx, id, domain.ItemTypeBait, 404, 1)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})
}

func TestSellFish(t *testing.T) {
	ctx := context.Background()

	t.Run("sell all", func(t *testing.T) {
		svc, store, id := setup(t, 0)
		addCatches(t, store, id,
			domain.FishCatch{FishID: 1, WeightGrams: 50, Value: 8},
			domain.FishCatch{FishID: 8, WeightGrams: 3000, Value: 70},
		)

		res, err := svc.SellFish(ctx, id, SellFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, int64(78), res.Earned)
		assert.Equal(t, int64(78), res.GoldAfter)

		_, err = svc.SellFish(ctx, id, SellFilter{})
		assert.ErrorIs(t, err, domain.ErrNothingToSell)
	})

	t.Run("sell by rarity", func(t *testing.T) {
		svc, store, id := setup(t, 0)
		addCatches(t, store, id,
			domain.FishCatch{FishID: 1, Value: 8},
			domain.FishCatch{FishID: 8, Value: 70},
		)

		res, err := svc.SellFish(ctx, id, SellFilter{Rarity: 3})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, int64(70), res.Earned)
	})

	t.Run("listed fish are kept", func(t *testing.T) {
		svc, store, id := setup(t, 0)
		addCatches(t, store, id, domain.FishCatch{FishID: 1, Value: 8, IsListed: true})

		_, err := svc.SellFish(ctx, id, SellFilter{})
		assert.ErrorIs(t, err, domain.ErrNothingToSell)
	})
}

func TestUpgradePond(t *testing.T) {
	ctx := context.Background()
	svc, _, id := setup(t, 6000)

	res, err := svc.UpgradePond(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 480, res.OldCapacity)
	assert.Equal(t, 999, res.NewCapacity)
	assert.Equal(t, int64(5500), res.GoldAfter)

	res, err = svc.UpgradePond(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 9999, res.NewCapacity)

	_, err = svc.UpgradePond(ctx, id)
	assert.ErrorIs(t, err, domain.ErrMaxPondCapacity)
}

func TestNextPondStep(t *testing.T) {
	assert.Equal(t, 0, NextPondStep(testPond, 480))
	assert.Equal(t, 1, NextPondStep(testPond, 999))
	assert.Equal(t, 1, NextPondStep(testPond, 1200))
	assert.Equal(t, -1, NextPondStep(testPond, 9999))
}

func TestGrantGold(t *testing.T) {
	svc, _, id := setup(t, 5)
	bal, err := svc.GrantGold(context.Background(), id, 45)
	require.NoError(t, err)
	assert.Equal(t, int64(50), bal)

	_, err = svc.GrantGold(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestShopEntries(t *testing.T) {
	svc, _, _ := setup(t, 0)
	entries := svc.ShopEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Positive(t, e.Price)
		if e.ItemType == domain.ItemTypeRod {
			rod, err := svc.catalog.Rod(e.TemplateID)
			require.NoError(t, err)
			assert.Equal(t, domain.RodSourceShop, rod.Source)
		}
	}
}
