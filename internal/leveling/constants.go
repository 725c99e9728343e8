package leveling

const (
	DefaultK          = 100
	DefaultMaxLevel   = 100
	DefaultRewardBase = 50
	// RewardTierSize is how many levels share one reward amount
	RewardTierSize = 10
)
