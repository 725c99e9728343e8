package repository

import (
	"context"
	"time"
)

// TechnologyTx records permanent unlocks
type TechnologyTx interface {
	ListUserTechnologiesTx(ctx context.Context, userID string) ([]int, error)
	// InsertUserTechnology reports false when the unlock already existed
	InsertUserTechnology(ctx context.Context, userID string, techID int, at time.Time) (bool, error)
}
