package domain

import "time"

// LevelUp describes a level change and the summed gold paid for it
type LevelUp struct {
	FromLevel int   `json:"from_level"`
	ToLevel   int   `json:"to_level"`
	Reward    int64 `json:"reward"`
}

// FishingResult is the outcome of one eligible fishing attempt.
// A missed catch is Success=false with no Catch.
type FishingResult struct {
	Success      bool       `json:"success"`
	Catch        *FishCatch `json:"catch,omitempty"`
	FishName     string     `json:"fish_name,omitempty"`
	Rarity       int        `json:"rarity,omitempty"`
	WeightKg     float64    `json:"weight_kg,omitempty"`
	Value        int64      `json:"value,omitempty"`
	ElementBonus float64    `json:"element_bonus,omitempty"`
	ExpGained    int64      `json:"exp_gained"`
	Fee          int64      `json:"fee"`
	SuccessRate  float64    `json:"success_rate"`
	LevelUp      *LevelUp   `json:"level_up,omitempty"`
	RodBroken    bool       `json:"rod_broken,omitempty"`
	BaitUsed     *int       `json:"bait_used,omitempty"`
	Auto         bool       `json:"auto,omitempty"`

	UnlockedTechnologies  []Technology  `json:"unlocked_technologies,omitempty"`
	CompletedAchievements []Achievement `json:"completed_achievements,omitempty"`
}

// FishingLog is an append-only record of a fishing attempt
type FishingLog struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	FishID      *int      `json:"fish_id,omitempty"`
	Success     bool      `json:"success"`
	WeightGrams int       `json:"weight_grams"`
	Value       int64     `json:"value"`
	Fee         int64     `json:"fee"`
	ExpGained   int64     `json:"exp_gained"`
	Auto        bool      `json:"auto"`
	CreatedAt   time.Time `json:"created_at"`
}

// SellResult summarizes a fish sale
type SellResult struct {
	Count     int   `json:"count"`
	Earned    int64 `json:"earned"`
	GoldAfter int64 `json:"gold_after"`
}

// PurchaseResult summarizes a shop purchase
type PurchaseResult struct {
	ItemType   ItemType `json:"item_type"`
	TemplateID int      `json:"template_id"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	Cost       int64    `json:"cost"`
	InstanceID int64    `json:"instance_id,omitempty"`
	GoldAfter  int64    `json:"gold_after"`
}

// PondUpgradeResult reports the new capacity after an upgrade
type PondUpgradeResult struct {
	OldCapacity int   `json:"old_capacity"`
	NewCapacity int   `json:"new_capacity"`
	Cost        int64 `json:"cost"`
	GoldAfter   int64 `json:"gold_after"`
}

// SignInResult is the outcome of a daily sign-in
type SignInResult struct {
	Reward    int64    `json:"reward"`
	Streak    int      `json:"streak"`
	ExpGained int64    `json:"exp_gained"`
	LevelUp   *LevelUp `json:"level_up,omitempty"`
	GoldAfter int64    `json:"gold_after"`

	UnlockedTechnologies  []Technology  `json:"unlocked_technologies,omitempty"`
	CompletedAchievements []Achievement `json:"completed_achievements,omitempty"`
}

// SignInLog is an append-only sign-in record
type SignInLog struct {
	UserID     string    `json:"user_id"`
	Reward     int64     `json:"reward"`
	Streak     int       `json:"streak"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// WagerResult is the outcome of a wipe-bomb wager
type WagerResult struct {
	Stake      int64   `json:"stake"`
	Multiplier float64 `json:"multiplier"`
	Payout     int64   `json:"payout"`
	Net        int64   `json:"net"`
	GoldAfter  int64   `json:"gold_after"`

	CompletedAchievements []Achievement `json:"completed_achievements,omitempty"`
}

// WagerLog is an append-only wager record
type WagerLog struct {
	UserID     string    `json:"user_id"`
	Stake      int64     `json:"stake"`
	Multiplier float64   `json:"multiplier"`
	Payout     int64     `json:"payout"`
	CreatedAt  time.Time `json:"created_at"`
}

// Profile is a read-only snapshot for status displays
type Profile struct {
	User             User               `json:"user"`
	Title            *Title             `json:"title,omitempty"`
	Rod              *RodInstance       `json:"rod,omitempty"`
	RodName          string             `json:"rod_name,omitempty"`
	Accessory        *AccessoryInstance `json:"accessory,omitempty"`
	AccessoryName    string             `json:"accessory_name,omitempty"`
	BaitName         string             `json:"bait_name,omitempty"`
	BaitCount        int                `json:"bait_count,omitempty"`
	PondCount        int                `json:"pond_count"`
	ExpIntoLevel     int64              `json:"exp_into_level"`
	ExpForNextLevel  int64              `json:"exp_for_next_level"`
	UnlockedTechKeys []string           `json:"unlocked_tech_keys"`
	CooldownLeft     time.Duration      `json:"cooldown_left"`
}
