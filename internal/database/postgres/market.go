package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/FishBot_Go/internal/domain"
)

const listingColumns = `id, seller_id, item_type, instance_id, template_id, price, created_at, expires_at`

func scanListing(row pgx.CollectableRow) (domain.MarketListing, error) {
	var l domain.MarketListing
	var itemType string
	err := row.Scan(&l.ID, &l.SellerID, &itemType, &l.InstanceID, &l.TemplateID, &l.Price, &l.CreatedAt, &l.ExpiresAt)
	l.ItemType = domain.ItemType(itemType)
	return l, err
}

func browseListings(ctx context.Context, q querier, f domain.MarketFilter, now time.Time) ([]domain.MarketListing, error) {
	b := psql.Select(listingColumns).
		From("market_listings").
		Where(sq.Gt{"expires_at": now}).
		OrderBy("price", "id")
	if f.ItemType != "" {
		b = b.Where(sq.Eq{"item_type": string(f.ItemType)})
	}
	if f.TemplateID != 0 {
		b = b.Where(sq.Eq{"template_id": f.TemplateID})
	}
	if f.SellerID != "" {
		b = b.Where(sq.Eq{"seller_id": f.SellerID})
	}
	if f.MaxPrice > 0 {
		b = b.Where(sq.LtOrEq{"price": f.MaxPrice})
	}
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}
	if f.Offset > 0 {
		b = b.Offset(f.Offset)
	}

	rows, err := queryBuilder(ctx, q, b)
	if err != nil {
		return nil, wrap(ErrMsgFailedToBrowse, err)
	}
	out, err := pgx.CollectRows(rows, scanListing)
	return out, wrap(ErrMsgFailedToBrowse, err)
}

func (t *tx) InsertListing(ctx context.Context, l *domain.MarketListing) error {
	return wrap(ErrMsgFailedToInsertListing, t.tx.QueryRow(ctx, `
		INSERT INTO market_listings (seller_id, item_type, instance_id, template_id, price, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		l.SellerID, string(l.ItemType), l.InstanceID, l.TemplateID, l.Price, l.CreatedAt, l.ExpiresAt,
	).Scan(&l.ID))
}

// GetListingForPurchase evaluates the expiry predicate in the locking
// statement, so a listing cannot expire between the check and the lock
func (t *tx) GetListingForPurchase(ctx context.Context, listingID int64, now time.Time) (*domain.MarketListing, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT `+listingColumns+` FROM market_listings WHERE id = $1 AND expires_at > $2 FOR UPDATE`, listingID, now)
	l, err := collectOne(rows, err, scanListing)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	if l != nil {
		return l, nil
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM market_listings WHERE id = $1)`, listingID).Scan(&exists); err != nil {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	if exists {
		return nil, domain.ErrListingExpired
	}
	return nil, domain.ErrListingNotFound
}

func (t *tx) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+listingColumns+` FROM market_listings WHERE id = $1`, listingID)
	l, err := collectOne(rows, err, scanListing)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	if l == nil {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

func (t *tx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+listingColumns+` FROM market_listings WHERE id = $1 FOR UPDATE`, listingID)
	l, err := collectOne(rows, err, scanListing)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	if l == nil {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

func (t *tx) DeleteListing(ctx context.Context, listingID int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM market_listings WHERE id = $1`, listingID)
	if err != nil {
		return wrap(ErrMsgFailedToDeleteListing, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// ClaimExpiredListings uses SKIP LOCKED so concurrent sweeps split the work
func (t *tx) ClaimExpiredListings(ctx context.Context, now time.Time, limit int) ([]domain.MarketListing, error) {
	b := psql.Select(listingColumns).
		From("market_listings").
		Where(sq.LtOrEq{"expires_at": now}).
		OrderBy("id").
		Suffix("FOR UPDATE SKIP LOCKED")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	rows, err := queryBuilder(ctx, t.tx, b)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	out, err := pgx.CollectRows(rows, scanListing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, wrap(ErrMsgFailedToGetListing, err)
	}
	return out, nil
}
