package leveling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func TestLevelForExp(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		exp   int64
		level int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{10_000, 11},
		{980_099, 99},
		{980_100, 100},
		{math.MaxInt64, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, c.LevelForExp(tt.exp), "exp=%d", tt.exp)
	}
}

func TestLevelForExp_MonotonicAndBounded(t *testing.T) {
	c := DefaultCurve()
	prev := c.LevelForExp(0)
	for exp := int64(0); exp <= 1_200_000; exp += 37 {
		l := c.LevelForExp(exp)
		assert.GreaterOrEqual(t, l, prev)
		assert.GreaterOrEqual(t, l, 1)
		assert.LessOrEqual(t, l, 100)
		prev = l
	}
}

func TestExpRequiredForLevel_IsInverse(t *testing.T) {
	c := DefaultCurve()
	for exp := int64(0); exp <= 1_000_000; exp += 13 {
		require.LessOrEqual(t, c.ExpRequiredForLevel(c.LevelForExp(exp)), exp, "exp=%d", exp)
	}
	for level := 1; level <= 100; level++ {
		assert.Equal(t, level, c.LevelForExp(c.ExpRequiredForLevel(level)))
	}
	assert.Equal(t, int64(0), c.ExpRequiredForLevel(-3))
	assert.Equal(t, c.ExpRequiredForLevel(100), c.ExpRequiredForLevel(250))
}

func TestLevelUpReward(t *testing.T) {
	c := DefaultCurve()
	assert.Equal(t, int64(50), c.LevelUpReward(1))
	assert.Equal(t, int64(50), c.LevelUpReward(2))
	assert.Equal(t, int64(50), c.LevelUpReward(10))
	assert.Equal(t, int64(100), c.LevelUpReward(11))
	assert.Equal(t, int64(200), c.LevelUpReward(21))
	assert.Equal(t, int64(25_600), c.LevelUpReward(100))
	assert.Equal(t, int64(50), c.RewardBetween(1, 2), "level 1 band is not paid on the way up")
}

func TestApply_MultiLevelSumsRewards(t *testing.T) {
	c := DefaultCurve()
	u := &domain.User{Level: 1}

	up := c.Apply(u, 10_000)

	require.NotNil(t, up)
	assert.Equal(t, 1, up.FromLevel)
	assert.Equal(t, 11, up.ToLevel)
	assert.Equal(t, int64(9*50+100), up.Reward)
	assert.Equal(t, int64(10_000), u.Exp)
	assert.Equal(t, 11, u.Level)
}

func TestApply_NoLevelChange(t *testing.T) {
	c := DefaultCurve()
	u := &domain.User{Level: 1, Exp: 10}

	assert.Nil(t, c.Apply(u, 5))
	assert.Equal(t, int64(15), u.Exp)
	assert.Equal(t, 1, u.Level)
}

func TestApply_NonPositiveGainIsNoop(t *testing.T) {
	c := DefaultCurve()
	u := &domain.User{Level: 2, Exp: 150}

	assert.Nil(t, c.Apply(u, 0))
	assert.Nil(t, c.Apply(u, -40))
	assert.Equal(t, int64(150), u.Exp)
}

func TestApply_SaturatesAtCap(t *testing.T) {
	c := DefaultCurve()
	u := &domain.User{Level: 100, Exp: 2_000_000}

	assert.Nil(t, c.Apply(u, 5_000_000))
	assert.Equal(t, 100, u.Level)
	assert.Equal(t, int64(7_000_000), u.Exp, "exp keeps accumulating past the cap")
}

func TestProgress(t *testing.T) {
	c := DefaultCurve()

	into, span := c.Progress(150)
	assert.Equal(t, int64(50), into)
	assert.Equal(t, int64(300), span)

	_, span = c.Progress(5_000_000)
	assert.Equal(t, int64(0), span)
}
