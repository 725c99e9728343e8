package domain

// Event type constants for event bus subscriptions and metrics.
// Event types follow the pattern: <entity>.<action>
const (
	EventTypeUserRegistered       = "user.registered"
	EventTypeFishingCompleted     = "fishing.completed"
	EventTypeGachaDrawn           = "gacha.drawn"
	EventTypeLevelUp              = "progression.level_up"
	EventTypeTechnologyUnlocked   = "technology.unlocked"
	EventTypeAchievementCompleted = "achievement.completed"
	EventTypeMarketSold           = "market.sold"
	EventTypeSignedIn             = "user.signed_in"
	EventTypeWagerSettled         = "wager.settled"
	EventTypeFishSold             = "fish.sold"
)

// UserRegisteredPayload is published once per new user
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Platform string `json:"platform"`
}

// FishingCompletedPayload is published after every eligible fishing attempt
type FishingCompletedPayload struct {
	UserID  string `json:"user_id"`
	Success bool   `json:"success"`
	Rarity  int    `json:"rarity"`
	Value   int64  `json:"value"`
	Auto    bool   `json:"auto"`
}

// GachaDrawnPayload is published per paid gacha request
type GachaDrawnPayload struct {
	UserID   string `json:"user_id"`
	PoolID   int    `json:"pool_id"`
	Rarities []int  `json:"rarities"`
	Cost     int64  `json:"cost"`
}

// LevelUpPayload is published when exp crosses one or more levels
type LevelUpPayload struct {
	UserID string `json:"user_id"`
	LevelUp
}

// TechnologyUnlockedPayload is published per unlocked technology
type TechnologyUnlockedPayload struct {
	UserID  string `json:"user_id"`
	TechKey string `json:"tech_key"`
	Auto    bool   `json:"auto"`
}

// AchievementCompletedPayload is published per completed achievement
type AchievementCompletedPayload struct {
	UserID string     `json:"user_id"`
	Key    string     `json:"key"`
	Reward RewardKind `json:"reward"`
}

// MarketSoldPayload is published when a listing is bought
type MarketSoldPayload struct {
	ListingID int64    `json:"listing_id"`
	SellerID  string   `json:"seller_id"`
	BuyerID   string   `json:"buyer_id"`
	ItemType  ItemType `json:"item_type"`
	Price     int64    `json:"price"`
}

// FishSoldPayload is published when fish are sold to the shop
type FishSoldPayload struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
	Earned int64  `json:"earned"`
}

// WagerSettledPayload is published after a wager resolves
type WagerSettledPayload struct {
	UserID     string  `json:"user_id"`
	Stake      int64   `json:"stake"`
	Multiplier float64 `json:"multiplier"`
	Payout     int64   `json:"payout"`
}
