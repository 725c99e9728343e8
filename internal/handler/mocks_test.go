package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/market"
	"github.com/osse101/FishBot_Go/internal/user"
	"github.com/osse101/FishBot_Go/internal/wager"
	"github.com/osse101/FishBot_Go/internal/worker"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, platform, platformID, username string) (*domain.User, bool, error) {
	args := m.Called(ctx, platform, platformID, username)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) Resolve(ctx context.Context, platform, platformID string) (*domain.User, error) {
	args := m.Called(ctx, platform, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Inventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) EquipRod(ctx context.Context, userID string, rodID int64) error {
	return m.Called(ctx, userID, rodID).Error(0)
}

func (m *MockUserService) EquipAccessory(ctx context.Context, userID string, accID int64) error {
	return m.Called(ctx, userID, accID).Error(0)
}

func (m *MockUserService) EquipBait(ctx context.Context, userID string, baitID int) error {
	return m.Called(ctx, userID, baitID).Error(0)
}

func (m *MockUserService) Titles(ctx context.Context, userID string) ([]domain.Title, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Title), args.Error(1)
}

func (m *MockUserService) SetTitle(ctx context.Context, userID string, titleID int) error {
	return m.Called(ctx, userID, titleID).Error(0)
}

func (m *MockUserService) SetAutoFishing(ctx context.Context, userID string, enabled bool) error {
	return m.Called(ctx, userID, enabled).Error(0)
}

func (m *MockUserService) GetCacheStats() user.CacheStats {
	return m.Called().Get(0).(user.CacheStats)
}

type MockFishingService struct {
	mock.Mock
}

func (m *MockFishingService) Fish(ctx context.Context, userID string) (*domain.FishingResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FishingResult), args.Error(1)
}

func (m *MockFishingService) AutoFish(ctx context.Context, userID string) (*domain.FishingResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FishingResult), args.Error(1)
}

func (m *MockFishingService) CooldownRemaining(ctx context.Context, userID string) (time.Duration, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Duration), args.Error(1)
}

type MockWagerService struct {
	mock.Mock
}

func (m *MockWagerService) Wager(ctx context.Context, userID string, stake int64) (*domain.WagerResult, error) {
	args := m.Called(ctx, userID, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WagerResult), args.Error(1)
}

func (m *MockWagerService) Table() []wager.Multiplier {
	return m.Called().Get(0).([]wager.Multiplier)
}

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) List(ctx context.Context, sellerID string, itemType domain.ItemType, instanceID int64, price int64) (*market.Listing, error) {
	args := m.Called(ctx, sellerID, itemType, instanceID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Listing), args.Error(1)
}

func (m *MockMarketService) Browse(ctx context.Context, q market.BrowseQuery) ([]market.Listing, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.Listing), args.Error(1)
}

func (m *MockMarketService) Buy(ctx context.Context, buyerID string, listingID int64) (*market.Listing, error) {
	args := m.Called(ctx, buyerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Listing), args.Error(1)
}

func (m *MockMarketService) Delist(ctx context.Context, sellerID string, listingID int64) error {
	return m.Called(ctx, sellerID, listingID).Error(0)
}

func (m *MockMarketService) ExpireListings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Sweep(ctx context.Context) (*worker.SweepSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.SweepSummary), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
