package gacha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/achievement"
	"github.com/osse101/FishBot_Go/internal/cascade"
	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/repository/memory"
)

var testPrices = Prices{Single: 160, Ten: 1500}

func setup(t *testing.T, gold int64) (*service, *memory.Store, *event.MemoryBus, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	bus := event.NewMemoryBus()
	ledger := economy.NewLedger()
	locks := concurrency.NewLockManager()
	ach := achievement.NewEvaluator(store, catalog.MustDefault(), ledger, bus, locks)
	svc, err := NewService(store, catalog.MustDefault(), ledger, bus, locks, cascade.NewRunner(nil, ach), testPrices)
	require.NoError(t, err)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	u := &domain.User{Platform: domain.PlatformDiscord, PlatformID: "42", Username: "gin", Level: 1}
	require.NoError(t, tx.InsertUser(ctx, u))
	if gold > 0 {
		_, err = tx.CreditGold(ctx, u.ID, gold)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))
	return svc.(*service), store, bus, u.ID
}

func TestDrawSingle_RodStartsFresh(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 200)
	svc.rnd = func() float64 { return 0 }

	res, err := svc.DrawSingle(ctx, id, standardPool)
	require.NoError(t, err)
	require.Len(t, res.Draws, 1)
	assert.Equal(t, int64(40), res.GoldAfter)
	assert.Equal(t, domain.ItemTypeRod, res.Draws[0].ItemType)

	inv, err := store.GetInventory(ctx, id)
	require.NoError(t, err)
	require.Len(t, inv.Rods, 1)
	rod := inv.Rods[0]
	assert.Equal(t, res.Draws[0].InstanceID, rod.ID)
	assert.Equal(t, 1, rod.Level)
	require.NotNil(t, rod.Durability)
	assert.Equal(t, GachaRodDurability, *rod.Durability)
	assert.False(t, rod.IsEquipped)
}

func TestDrawTen_GrantsEveryDraw(t *testing.T) {
	ctx := context.Background()
	svc, store, bus, id := setup(t, 2000)

	var published []domain.GachaDrawnPayload
	bus.Subscribe(event.GachaDrawn, func(_ context.Context, e event.Event) error {
		published = append(published, e.Payload.(domain.GachaDrawnPayload))
		return nil
	})

	res, err := svc.DrawTen(ctx, id, standardPool)
	require.NoError(t, err)
	assert.Len(t, res.Draws, TenDrawCount)
	assert.Equal(t, int64(500), res.GoldAfter)

	inv, err := store.GetInventory(ctx, id)
	require.NoError(t, err)
	baitUnits := 0
	for _, b := range inv.Baits {
		baitUnits += b.Quantity
	}
	assert.Equal(t, TenDrawCount, len(inv.Rods)+len(inv.Accessories)+baitUnits)

	require.Len(t, published, 1)
	assert.Len(t, published[0].Rarities, TenDrawCount)
	assert.Equal(t, testPrices.Ten, published[0].Cost)
}

func TestDrawTen_EmptySubDrawsStillCharged(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 1500)
	svc.rnd = func() float64 { return 0 }

	res, err := svc.DrawTen(ctx, id, baitPool)
	require.NoError(t, err)
	assert.Empty(t, res.Draws)
	assert.Equal(t, int64(0), res.GoldAfter)

	inv, err := store.GetInventory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, inv.Baits)
}

func TestDraw_InsufficientFundsHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 100)

	_, err := svc.DrawSingle(ctx, id, standardPool)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	u, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.Gold)

	inv, err := store.GetInventory(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, inv.Rods)
	assert.Empty(t, inv.Accessories)
	assert.Empty(t, inv.Baits)
}

func TestDrawSingle_UnknownPool(t *testing.T) {
	svc, _, _, id := setup(t, 1000)
	_, err := svc.DrawSingle(context.Background(), id, 404)
	assert.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestDrawSingle_LegendaryRodCompletesAchievement(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 200)
	rolls := []float64{0.999, 0, 0} // tier 5, rod, first candidate
	svc.rnd = func() float64 {
		r := rolls[0]
		rolls = rolls[1:]
		return r
	}

	res, err := svc.DrawSingle(ctx, id, standardPool)
	require.NoError(t, err)
	require.Len(t, res.Draws, 1)
	assert.Equal(t, domain.ItemTypeRod, res.Draws[0].ItemType)
	assert.Equal(t, domain.MaxRarity, res.Draws[0].Rarity)

	require.Len(t, res.CompletedAchievements, 1)
	assert.Equal(t, "legend_hunter", res.CompletedAchievements[0].Key)

	progress, err := store.ListAchievementProgress(ctx, id)
	require.NoError(t, err)
	completed := 0
	for _, p := range progress {
		if p.Completed {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}
