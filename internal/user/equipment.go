package user

import (
	"context"
	"fmt"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// EquipRod swaps the equipped rod. Broken and listed rods cannot be equipped.
func (s *service) EquipRod(ctx context.Context, userID string, rodID int64) error {
	err := s.mutateUser(ctx, userID, func(tx repository.Tx, u *domain.User) error {
		rod, err := tx.GetRod(ctx, rodID)
		if err != nil {
			return err
		}
		switch {
		case rod.UserID != userID:
			return domain.ErrNotOwned
		case rod.IsListed:
			return domain.ErrItemListed
		case rod.IsEquipped:
			return domain.ErrAlreadyEquipped
		case rod.Durability != nil && *rod.Durability <= 0:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgRodBroken)
		}
		return tx.EquipRod(ctx, userID, rodID)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgRodEquipped, "user_id", userID, "rod_id", rodID)
	return nil
}

// EquipAccessory swaps the equipped accessory
func (s *service) EquipAccessory(ctx context.Context, userID string, accID int64) error {
	err := s.mutateUser(ctx, userID, func(tx repository.Tx, u *domain.User) error {
		acc, err := tx.GetAccessory(ctx, accID)
		if err != nil {
			return err
		}
		switch {
		case acc.UserID != userID:
			return domain.ErrNotOwned
		case acc.IsListed:
			return domain.ErrItemListed
		case acc.IsEquipped:
			return domain.ErrAlreadyEquipped
		}
		return tx.EquipAccessory(ctx, userID, accID)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgAccEquipped, "user_id", userID, "accessory_id", accID)
	return nil
}

// EquipBait selects the bait consumed by fishing. Zero clears the selection.
func (s *service) EquipBait(ctx context.Context, userID string, baitID int) error {
	if baitID != 0 {
		if _, err := s.catalog.Bait(baitID); err != nil {
			return err
		}
	}
	err := s.mutateUser(ctx, userID, func(tx repository.Tx, u *domain.User) error {
		if baitID == 0 {
			u.CurrentBaitID = nil
			return nil
		}
		qty, err := tx.GetBaitQuantity(ctx, userID, baitID)
		if err != nil {
			return err
		}
		if qty <= 0 {
			return domain.ErrInsufficientBait
		}
		id := baitID
		u.CurrentBaitID = &id
		return nil
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgBaitEquipped, "user_id", userID, "bait_id", baitID)
	return nil
}
