package repository

import (
	"context"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// MarketTx covers listings
type MarketTx interface {
	InsertListing(ctx context.Context, listing *domain.MarketListing) error
	// GetListing reads a listing without locking it
	GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	// GetListingForPurchase locks a listing that is still live at now. It returns
	// domain.ErrListingExpired when the row exists but expired and
	// domain.ErrListingNotFound when it is gone.
	GetListingForPurchase(ctx context.Context, listingID int64, now time.Time) (*domain.MarketListing, error)
	GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	DeleteListing(ctx context.Context, listingID int64) error
	// ClaimExpiredListings locks up to limit expired listings, skipping rows other sweeps hold
	ClaimExpiredListings(ctx context.Context, now time.Time, limit int) ([]domain.MarketListing, error)
}
