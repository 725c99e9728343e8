package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// psql builds $n-placeholder statements
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so reads can run
// inside or outside a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a unique violation on constraint.
// An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != PgErrorCodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// wrap attaches a message to a storage failure. Domain errors pass through untouched.
func wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFound maps pgx.ErrNoRows onto a domain error
func notFound(err error, domainErr error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErr
	}
	return wrap(msg, err)
}

// queryBuilder runs a squirrel select through q
func queryBuilder(ctx context.Context, q querier, b sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, wrap(ErrMsgFailedToBuildQuery, err)
	}
	return q.Query(ctx, sql, args...)
}

func execBuilder(ctx context.Context, q querier, b sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, wrap(ErrMsgFailedToBuildQuery, err)
	}
	return q.Exec(ctx, sql, args...)
}

func instanceTable(itemType domain.ItemType) (string, error) {
	switch itemType {
	case domain.ItemTypeRod:
		return "rod_instances", nil
	case domain.ItemTypeAccessory:
		return "accessory_instances", nil
	case domain.ItemTypeFish:
		return "fish_catches", nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrNotTradable, itemType)
	}
}
