package user

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Titles lists the titles a user owns
func (s *service) Titles(ctx context.Context, userID string) ([]domain.Title, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.ListTitleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Title, 0, len(ids))
	for _, id := range ids {
		if t, err := s.catalog.Title(id); err == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

// SetTitle displays an owned title. Zero clears it.
func (s *service) SetTitle(ctx context.Context, userID string, titleID int) error {
	if titleID != 0 {
		if _, err := s.catalog.Title(titleID); err != nil {
			return err
		}
	}
	err := s.mutateUser(ctx, userID, func(tx repository.Tx, u *domain.User) error {
		if titleID == 0 {
			u.CurrentTitleID = nil
			return nil
		}
		owned, err := tx.HasTitle(ctx, userID, titleID)
		if err != nil {
			return err
		}
		if !owned {
			return domain.ErrTitleNotOwned
		}
		id := titleID
		u.CurrentTitleID = &id
		return nil
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgTitleSet, "user_id", userID, "title_id", titleID)
	return nil
}
