package domain

import "time"

// Supported chat platforms
const (
	PlatformDiscord = "discord"
	PlatformTwitch  = "twitch"
	PlatformQQ      = "qq"
)

// ValidPlatforms is the set of platforms a user may register from
var ValidPlatforms = map[string]bool{
	PlatformDiscord: true,
	PlatformTwitch:  true,
	PlatformQQ:      true,
}

// User represents a registered player and their economy state.
// Level is always derived from Exp through the level curve.
type User struct {
	ID         string `json:"id"`
	Platform   string `json:"platform"`
	PlatformID string `json:"platform_id"`
	Username   string `json:"username"`
	GroupID    string `json:"group_id,omitempty"`

	Gold    int64 `json:"gold"`
	Premium int64 `json:"premium"`
	Exp     int64 `json:"exp"`
	Level   int   `json:"level"`

	FishingCount    int64      `json:"fishing_count"`
	TotalFishWeight int64      `json:"total_fish_weight"` // grams
	TotalIncome     int64      `json:"total_income"`
	LastFishingTime *time.Time `json:"last_fishing_time,omitempty"`

	AutoFishing      bool `json:"auto_fishing"`
	FishPondCapacity int  `json:"fish_pond_capacity"`
	CurrentBaitID    *int `json:"current_bait_id,omitempty"`
	CurrentTitleID   *int `json:"current_title_id,omitempty"`

	SignInStreak int        `json:"sign_in_streak"`
	LastSignIn   *time.Time `json:"last_sign_in,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy so callers can mutate pointer fields safely.
func (u User) Clone() User {
	c := u
	c.LastFishingTime = cloneTime(u.LastFishingTime)
	c.LastSignIn = cloneTime(u.LastSignIn)
	c.CurrentBaitID = cloneInt(u.CurrentBaitID)
	c.CurrentTitleID = cloneInt(u.CurrentTitleID)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
