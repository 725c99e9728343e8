package wager

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

type fakeGate struct {
	unlocked bool
	err      error
}

func (g fakeGate) IsUnlocked(ctx context.Context, userID, techKey string) (bool, error) {
	return g.unlocked, g.err
}

func setup(t *testing.T, gold int64, gate FeatureGate) (*service, *memory.Store, *event.MemoryBus, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	ledger := economy.NewLedger()
	bus := event.NewMemoryBus()
	locks := concurrency.NewLockManager()
	ach := achievement.NewEvaluator(store, catalog.MustDefault(), ledger, bus, locks)

	svc := NewService(store, ledger, gate, bus, locks, cascade.NewRunner(nil, ach),
		Config{MinStake: 10, MaxStake: 1000}).(*service)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	u := &domain.User{Platform: domain.PlatformDiscord, PlatformID: "w", Username: "wes", Level: 15}
	require.NoError(t, tx.InsertUser(ctx, u))
	if gold > 0 {
		_, err = tx.CreditGold(ctx, u.ID, gold)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))
	return svc, store, bus, u.ID
}

func TestPayout(t *testing.T) {
	assert.Equal(t, int64(0), Payout(100, 0))
	assert.Equal(t, int64(50), Payout(101, 0.5), "floored")
	assert.Equal(t, int64(151), Payout(101, 1.5))
	assert.Equal(t, int64(1000), Payout(100, 10))
}

func TestWager_Lose(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 500, fakeGate{unlocked: true})
	svc.rnd = func() float64 { return 0 }

	res, err := svc.Wager(ctx, id, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Multiplier)
	assert.Equal(t, int64(0), res.Payout)
	assert.Equal(t, int64(-100), res.Net)
	assert.Equal(t, int64(400), res.GoldAfter)

	u, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(400), u.Gold)
}

func TestWager_TopMultiplierCompletesAchievement(t *testing.T) {
	ctx := context.Background()
	svc, store, bus, id := setup(t, 500, fakeGate{unlocked: true})
	svc.rnd = func() float64 { return 0.995 }

	var settled []domain.WagerSettledPayload
	bus.Subscribe(event.WagerSettled, func(ctx context.Context, e event.Event) error {
		settled = append(settled, e.Payload.(domain.WagerSettledPayload))
		return nil
	})

	res, err := svc.Wager(ctx, id, 100)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Multiplier)
	assert.Equal(t, int64(1000), res.Payout)
	assert.Equal(t, int64(1400), res.GoldAfter)

	require.Len(t, res.CompletedAchievements, 1)
	assert.Equal(t, "high_roller", res.CompletedAchievements[0].Key)
	titles, err := store.ListTitleIDs(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, titles, 4)

	require.Len(t, settled, 1)
	assert.Equal(t, int64(1000), settled[0].Payout)
}

func TestWager_StakeBounds(t *testing.T) {
	ctx := context.Background()
	svc, _, _, id := setup(t, 5000, fakeGate{unlocked: true})

	_, err := svc.Wager(ctx, id, 9)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Wager(ctx, id, 1001)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWager_RequiresWipeBomb(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 500, fakeGate{})

	_, err := svc.Wager(ctx, id, 100)
	assert.ErrorIs(t, err, domain.ErrTechnologyUnavailable)

	u, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(500), u.Gold)
}

func TestWager_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc, store, _, id := setup(t, 50, fakeGate{unlocked: true})
	svc.rnd = func() float64 { return 0.995 }

	_, err := svc.Wager(ctx, id, 100)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	u, err := store.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(50), u.Gold)
}

func TestDefaultTable_ExpectedReturnBelowStake(t *testing.T) {
	var total, ev float64
	for _, m := range DefaultTable {
		total += m.Weight
		ev += m.Value * m.Weight
	}
	assert.Less(t, ev/total, 1.0)
}
