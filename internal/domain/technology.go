package domain

import "time"

// TechEffect is the effect applied when a technology unlocks
type TechEffect string

const (
	TechEffectAutoFishing      TechEffect = "auto_fishing"
	TechEffectFishPondCapacity TechEffect = "fish_pond_capacity"
	// TechEffectPermission gates a feature; unlocking only records ownership
	TechEffectPermission TechEffect = "permission"
)

// Technology is a node in the unlock graph
type Technology struct {
	ID            int        `json:"id"`
	Key           string     `json:"key"`
	DisplayName   string     `json:"display_name"`
	Description   string     `json:"description,omitempty"`
	RequiredLevel int        `json:"required_level"`
	RequiredGold  int64      `json:"required_gold"`
	Prerequisites []int      `json:"prerequisites,omitempty"`
	EffectType    TechEffect `json:"effect_type"`
	EffectValue   int        `json:"effect_value,omitempty"`
}

// UserTechnology records a permanent unlock
type UserTechnology struct {
	UserID     string    `json:"user_id"`
	TechID     int       `json:"tech_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// TechStatus is a technology annotated for one user
type TechStatus struct {
	Technology
	Unlocked  bool     `json:"unlocked"`
	CanUnlock bool     `json:"can_unlock"`
	Blockers  []string `json:"blockers,omitempty"`
}
