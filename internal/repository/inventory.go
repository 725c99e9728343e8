package repository

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// InventoryTx covers owned instances. Lookups of missing rows return
// domain.ErrInstanceNotFound; "equipped" lookups return nil, nil when empty.
type InventoryTx interface {
	InsertRod(ctx context.Context, rod *domain.RodInstance) error
	GetRod(ctx context.Context, rodID int64) (*domain.RodInstance, error)
	ListRods(ctx context.Context, userID string) ([]domain.RodInstance, error)
	GetEquippedRod(ctx context.Context, userID string) (*domain.RodInstance, error)
	// EquipRod unequips the user's current rod and equips rodID
	EquipRod(ctx context.Context, userID string, rodID int64) error
	UnequipRod(ctx context.Context, userID string) error
	UpdateRodDurability(ctx context.Context, rodID int64, durability *int) error

	InsertAccessory(ctx context.Context, acc *domain.AccessoryInstance) error
	GetAccessory(ctx context.Context, accID int64) (*domain.AccessoryInstance, error)
	ListAccessories(ctx context.Context, userID string) ([]domain.AccessoryInstance, error)
	GetEquippedAccessory(ctx context.Context, userID string) (*domain.AccessoryInstance, error)
	EquipAccessory(ctx context.Context, userID string, accID int64) error

	// AddBait creates or grows a stack
	AddBait(ctx context.Context, userID string, baitID, quantity int) error
	// ConsumeBait shrinks a stack, deleting it at zero. Returns domain.ErrInsufficientBait.
	ConsumeBait(ctx context.Context, userID string, baitID, quantity int) (int, error)
	GetBaitQuantity(ctx context.Context, userID string, baitID int) (int, error)

	InsertCatch(ctx context.Context, catch *domain.FishCatch) error
	GetCatch(ctx context.Context, catchID int64) (*domain.FishCatch, error)
	// ListCatches returns unsold, unlisted catches
	ListCatches(ctx context.Context, userID string) ([]domain.FishCatch, error)
	// CountPond counts every catch the user holds, listed or not
	CountPond(ctx context.Context, userID string) (int, error)
	DeleteCatches(ctx context.Context, userID string, catchIDs []int64) (int, error)

	// SetListed toggles market escrow on a tradable instance
	SetListed(ctx context.Context, itemType domain.ItemType, instanceID int64, listed bool) error
	// TransferInstance hands an instance to another user, clearing equip and listing flags
	TransferInstance(ctx context.Context, itemType domain.ItemType, instanceID int64, toUserID string) error
}
