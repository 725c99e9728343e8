// Package postgres is the PostgreSQL implementation of repository.Store.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Store implements repository.Store on a pgx pool
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BeginTx opens a read-committed transaction. Callers lock rows with the
// *ForUpdate methods.
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	t, err := s.db.Begin(ctx)
	if err != nil {
		return nil, wrap(ErrMsgFailedToBeginTransaction, err)
	}
	return &tx{tx: t}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, s.db, `WHERE user_id = $1`, userID)
}

func (s *Store) GetUserByPlatformID(ctx context.Context, platform, platformID string) (*domain.User, error) {
	return getUser(ctx, s.db, `WHERE platform = $1 AND platform_id = $2`, platform, platformID)
}

func (s *Store) ListAutoFishingUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id FROM users WHERE auto_fishing ORDER BY user_id`)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListUsers, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return ids, wrap(ErrMsgFailedToListUsers, err)
}

func (s *Store) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	inv := &domain.Inventory{}
	var err error
	if inv.Rods, err = listRods(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if inv.Accessories, err = listAccessories(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if inv.Baits, err = listBaits(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if inv.Fish, err = listCatches(ctx, s.db, userID, true); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Store) ListUserTechnologyIDs(ctx context.Context, userID string) ([]int, error) {
	return listTechnologyIDs(ctx, s.db, userID)
}

func (s *Store) ListAchievementProgress(ctx context.Context, userID string) ([]domain.AchievementProgress, error) {
	return listProgress(ctx, s.db, userID)
}

func (s *Store) ListTitleIDs(ctx context.Context, userID string) ([]int, error) {
	rows, err := s.db.Query(ctx, `SELECT title_id FROM user_titles WHERE user_id = $1 ORDER BY title_id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	return ids, wrap(ErrMsgFailedToListInstances, err)
}

func (s *Store) BrowseListings(ctx context.Context, f domain.MarketFilter, now time.Time) ([]domain.MarketListing, error) {
	return browseListings(ctx, s.db, f, now)
}

// tx wraps pgx.Tx
type tx struct {
	tx pgx.Tx
}

var _ repository.Tx = (*tx)(nil)

func (t *tx) Commit(ctx context.Context) error {
	err := t.tx.Commit(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return wrap(ErrMsgFailedToCommitTransaction, err)
}

func (t *tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}
