package repository

import (
	"context"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// UserTx covers user rows inside a transaction
type UserTx interface {
	// InsertUser returns domain.ErrUserAlreadyExists on a (platform, platform_id) conflict
	InsertUser(ctx context.Context, user *domain.User) error
	// GetUserForUpdate loads and row-locks the user
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	// UpdateUser persists every mutable non-currency field. Gold and premium only
	// change through LedgerTx.
	UpdateUser(ctx context.Context, user *domain.User) error
}

// Reader holds lock-free reads used for display and scheduling
type Reader interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByPlatformID(ctx context.Context, platform, platformID string) (*domain.User, error)
	ListAutoFishingUserIDs(ctx context.Context) ([]string, error)
	GetInventory(ctx context.Context, userID string) (*domain.Inventory, error)
	ListUserTechnologyIDs(ctx context.Context, userID string) ([]int, error)
	ListAchievementProgress(ctx context.Context, userID string) ([]domain.AchievementProgress, error)
	ListTitleIDs(ctx context.Context, userID string) ([]int, error)
	BrowseListings(ctx context.Context, filter domain.MarketFilter, now time.Time) ([]domain.MarketListing, error)
}
