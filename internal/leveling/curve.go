package leveling

import (
	"math"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// Curve maps accumulated exp to a level: level = min(floor(sqrt(exp/K))+1, MaxLevel).
type Curve struct {
	K          int64
	MaxLevel   int
	RewardBase int64
}

// NewCurve builds a curve; non-positive arguments fall back to defaults
func NewCurve(k int64, maxLevel int, rewardBase int64) Curve {
	if k <= 0 {
		k = DefaultK
	}
	if maxLevel < 1 {
		maxLevel = DefaultMaxLevel
	}
	if rewardBase <= 0 {
		rewardBase = DefaultRewardBase
	}
	return Curve{K: k, MaxLevel: maxLevel, RewardBase: rewardBase}
}

// DefaultCurve is K=100, level cap 100, 50 gold base reward
func DefaultCurve() Curve {
	return NewCurve(DefaultK, DefaultMaxLevel, DefaultRewardBase)
}

// LevelForExp returns the level for exp. Negative exp behaves as zero.
func (c Curve) LevelForExp(exp int64) int {
	if exp <= 0 {
		return 1
	}
	// floor(sqrt(exp/K)) == isqrt(exp/K) for integer division
	root := isqrt(exp / c.K)
	if root >= int64(c.MaxLevel-1) {
		return c.MaxLevel
	}
	return int(root) + 1
}

// ExpRequiredForLevel is the cumulative exp at which level is first reached.
// Levels outside [1, MaxLevel] are clamped.
func (c Curve) ExpRequiredForLevel(level int) int64 {
	level = c.clamp(level)
	n := int64(level - 1)
	return c.K * n * n
}

// LevelUpReward is the reward band for level: RewardBase doubled every ten levels.
// Level 1 is never reached by a level-up, so only levels above 1 are ever paid.
func (c Curve) LevelUpReward(level int) int64 {
	level = c.clamp(level)
	return c.RewardBase << uint((level-1)/RewardTierSize)
}

// RewardBetween sums the rewards of every level in (from, to]
func (c Curve) RewardBetween(from, to int) int64 {
	var total int64
	for l := c.clamp(from) + 1; l <= c.clamp(to); l++ {
		total += c.LevelUpReward(l)
	}
	return total
}

// Progress returns exp earned inside the current level and the span to the next.
// At the cap the span is zero.
func (c Curve) Progress(exp int64) (into, span int64) {
	if exp < 0 {
		exp = 0
	}
	level := c.LevelForExp(exp)
	start := c.ExpRequiredForLevel(level)
	if level >= c.MaxLevel {
		return exp - start, 0
	}
	return exp - start, c.ExpRequiredForLevel(level+1) - start
}

// Apply adds gain to user.Exp and re-derives user.Level. It returns the level
// change with the summed reward for every level crossed, or nil when the level
// did not change. Non-positive gains are a no-op.
func (c Curve) Apply(user *domain.User, gain int64) *domain.LevelUp {
	if gain <= 0 {
		return nil
	}
	if user.Exp > math.MaxInt64-gain {
		user.Exp = math.MaxInt64
	} else {
		user.Exp += gain
	}

	from := c.LevelForExp(user.Exp - gain)
	if user.Level > from {
		from = user.Level
	}
	to := c.LevelForExp(user.Exp)
	user.Level = to
	if to <= from {
		return nil
	}
	return &domain.LevelUp{FromLevel: from, ToLevel: to, Reward: c.RewardBetween(from, to)}
}

func (c Curve) clamp(level int) int {
	if level < 1 {
		return 1
	}
	if level > c.MaxLevel {
		return c.MaxLevel
	}
	return level
}

func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
