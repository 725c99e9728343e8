package repository

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// AchievementTx stores per-user achievement progress
type AchievementTx interface {
	ListAchievementProgressTx(ctx context.Context, userID string) ([]domain.AchievementProgress, error)
	UpsertAchievementProgress(ctx context.Context, progress *domain.AchievementProgress) error
}

// TitleTx stores owned titles
type TitleTx interface {
	// InsertTitle reports false when the user already owned it
	InsertTitle(ctx context.Context, userID string, titleID int) (bool, error)
	HasTitle(ctx context.Context, userID string, titleID int) (bool, error)
}
