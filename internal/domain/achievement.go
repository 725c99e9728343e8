package domain

import "time"

// AchievementStat names the statistic an achievement threshold compares against
type AchievementStat string

const (
	StatFishCount          AchievementStat = "fish_count"
	StatUniqueSpecies      AchievementStat = "unique_species"
	StatGarbageCount       AchievementStat = "garbage_count"
	StatMaxWagerMultiplier AchievementStat = "max_wager_multiplier"
	StatLegendaryRods      AchievementStat = "legendary_rods"
	StatLegendaryAccessory AchievementStat = "legendary_accessories"
	StatHeavyCatch         AchievementStat = "heavy_catch"
	StatCoinsEarned        AchievementStat = "coins_earned"
)

// RewardKind tags the Reward variant
type RewardKind string

const (
	RewardKindCoins   RewardKind = "coins"
	RewardKindTitle   RewardKind = "title"
	RewardKindBait    RewardKind = "bait"
	RewardKindPremium RewardKind = "premium"
)

// Reward is a closed set of achievement payouts. Only types in this package implement it.
type Reward interface {
	Kind() RewardKind
	sealed()
}

// CoinsReward credits gold
type CoinsReward struct {
	Amount int64 `json:"amount"`
}

// TitleReward grants a title
type TitleReward struct {
	TitleID int `json:"title_id"`
}

// BaitReward adds bait to a stack
type BaitReward struct {
	BaitID   int `json:"bait_id"`
	Quantity int `json:"quantity"`
}

// PremiumReward credits the secondary currency
type PremiumReward struct {
	Amount int64 `json:"amount"`
}

func (CoinsReward) Kind() RewardKind   { return RewardKindCoins }
func (TitleReward) Kind() RewardKind   { return RewardKindTitle }
func (BaitReward) Kind() RewardKind    { return RewardKindBait }
func (PremiumReward) Kind() RewardKind { return RewardKindPremium }

func (CoinsReward) sealed()   {}
func (TitleReward) sealed()   {}
func (BaitReward) sealed()    {}
func (PremiumReward) sealed() {}

// Achievement is a fixed rule: fire once Stat reaches Threshold
type Achievement struct {
	ID          int             `json:"id"`
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stat        AchievementStat `json:"stat"`
	Threshold   int64           `json:"threshold"`
	Reward      Reward          `json:"-"`
}

// AchievementProgress is per-user state; completed rows are never re-evaluated
type AchievementProgress struct {
	UserID        string     `json:"user_id"`
	AchievementID int        `json:"achievement_id"`
	Progress      int64      `json:"progress"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Title is a displayable badge
type Title struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
