package domain

import "time"

// GachaCandidate is one drawable template; its tier is the template's rarity
type GachaCandidate struct {
	ItemType   ItemType `json:"item_type"`
	TemplateID int      `json:"template_id"`
}

// GachaPool is a named set of candidates with optional per-tier weights
type GachaPool struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Candidates  []GachaCandidate `json:"candidates"`
	TierWeights map[int]float64  `json:"tier_weights,omitempty"`
}

// GachaDraw is a single successful draw
type GachaDraw struct {
	ItemType   ItemType `json:"item_type"`
	TemplateID int      `json:"template_id"`
	Name       string   `json:"name"`
	Rarity     int      `json:"rarity"`
	InstanceID int64    `json:"instance_id,omitempty"`
}

// GachaResult is the outcome of a paid single or ten draw
type GachaResult struct {
	PoolID                int           `json:"pool_id"`
	Cost                  int64         `json:"cost"`
	Draws                 []GachaDraw   `json:"draws"`
	GoldAfter             int64         `json:"gold_after"`
	CompletedAchievements []Achievement `json:"completed_achievements,omitempty"`
}

// GachaLog is an append-only draw record
type GachaLog struct {
	UserID     string    `json:"user_id"`
	PoolID     int       `json:"pool_id"`
	ItemType   ItemType  `json:"item_type"`
	TemplateID int       `json:"template_id"`
	Rarity     int       `json:"rarity"`
	DrawnAt    time.Time `json:"drawn_at"`
}
