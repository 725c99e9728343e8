package domain

import "time"

// MarketListing escrows one instance for sale until bought, delisted, or expired
type MarketListing struct {
	ID         int64     `json:"id"`
	SellerID   string    `json:"seller_id"`
	ItemType   ItemType  `json:"item_type"`
	InstanceID int64     `json:"instance_id"`
	TemplateID int       `json:"template_id"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the listing can no longer be bought at now
func (l MarketListing) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// MarketFilter narrows a listing browse
type MarketFilter struct {
	ItemType   ItemType
	TemplateID int
	SellerID   string
	MaxPrice   int64
	Limit      uint64
	Offset     uint64
}
