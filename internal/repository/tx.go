package repository

import (
	"context"
	"errors"
)

// ErrTxClosed is returned by Commit or Rollback on a finished transaction
var ErrTxClosed = errors.New("tx is closed")

// Tx is a unit of work. Every state-changing game operation runs inside one and
// locks the acting user's row first, which serializes operations per user.
type Tx interface {
	UserTx
	LedgerTx
	InventoryTx
	LogTx
	TechnologyTx
	AchievementTx
	TitleTx
	MarketTx

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the persistence root
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
	Reader
	Ping(ctx context.Context) error
}
