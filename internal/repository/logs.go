package repository

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// LogTx appends history rows and answers aggregate questions over them
type LogTx interface {
	InsertFishingLog(ctx context.Context, log *domain.FishingLog) error
	InsertGachaLogs(ctx context.Context, logs []domain.GachaLog) error
	InsertSignInLog(ctx context.Context, log *domain.SignInLog) error
	InsertWagerLog(ctx context.Context, log *domain.WagerLog) error

	// CatchCountsByFish aggregates successful catches per fish template
	CatchCountsByFish(ctx context.Context, userID string) (map[int]int64, error)
	MaxCatchWeight(ctx context.Context, userID string) (int, error)
	MaxWagerMultiplier(ctx context.Context, userID string) (float64, error)
}
