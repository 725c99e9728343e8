package repository

import (
	"context"
	"errors"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error.
// Use with defer; rolling back a committed transaction is silent.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
