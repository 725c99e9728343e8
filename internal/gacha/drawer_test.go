package gacha

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
)

const standardPool = 1
const baitPool = 2

func newDrawer(t testing.TB) *Drawer {
	t.Helper()
	d, err := NewDrawer(catalog.MustDefault())
	require.NoError(t, err)
	return d
}

func TestDraw_TierFrequencies(t *testing.T) {
	d := newDrawer(t)
	rng := rand.New(rand.NewSource(42))

	const n = 100000
	counts := make([]int, domain.MaxRarity+1)
	for i := 0; i < n; i++ {
		draw, ok, err := d.Draw(standardPool, rng.Float64)
		require.NoError(t, err)
		require.True(t, ok, "standard pool has a candidate for every tier and type")
		counts[draw.Rarity]++
	}

	for tier := domain.MinRarity; tier <= domain.MaxRarity; tier++ {
		want := DefaultTierWeights[tier-1] / 100
		got := float64(counts[tier]) / n
		assert.InDelta(t, want, got, 0.01, "tier %d", tier)
	}
}

func TestDraw_PoolOverrideWeights(t *testing.T) {
	d := newDrawer(t)
	rng := rand.New(rand.NewSource(7))

	const n = 60000
	counts := make([]int, domain.MaxRarity+1)
	hits := 0
	for i := 0; i < n; i++ {
		draw, ok, err := d.Draw(baitPool, rng.Float64)
		require.NoError(t, err)
		if !ok {
			continue
		}
		hits++
		assert.Equal(t, domain.ItemTypeBait, draw.ItemType)
		counts[draw.Rarity]++
	}

	// Rod and accessory rolls find nothing in a bait-only pool
	assert.InDelta(t, 1.0/3, float64(hits)/n, 0.02)
	assert.InDelta(t, 0.40, float64(counts[1])/float64(hits), 0.02)
	assert.InDelta(t, 0.02, float64(counts[5])/float64(hits), 0.01)
}

func TestDraw_UnknownPool(t *testing.T) {
	d := newDrawer(t)
	_, _, err := d.Draw(99, rand.Float64)
	assert.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestDrawN_DropsEmptySubDraws(t *testing.T) {
	d := newDrawer(t)
	zero := func() float64 { return 0 }

	draws, err := d.DrawN(baitPool, TenDrawCount, zero)
	require.NoError(t, err)
	assert.Empty(t, draws)

	draws, err = d.DrawN(standardPool, TenDrawCount, zero)
	require.NoError(t, err)
	require.Len(t, draws, TenDrawCount)
	for _, dr := range draws {
		assert.Equal(t, domain.ItemTypeRod, dr.ItemType)
		assert.Equal(t, 1, dr.Rarity)
	}
}

func TestTierWeights(t *testing.T) {
	assert.Equal(t, DefaultTierWeights, tierWeights(domain.GachaPool{}))

	w := tierWeights(domain.GachaPool{TierWeights: map[int]float64{5: 10, 9: 3}})
	assert.Equal(t, []float64{0, 0, 0, 0, 10}, w)
}

func BenchmarkDrawer_DrawTen(b *testing.B) {
	d := newDrawer(b)
	rng := rand.New(rand.NewSource(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.DrawN(standardPool, TenDrawCount, rng.Float64)
	}
}
