package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/FishBot_Go/internal/domain"
)

const userColumns = `user_id, platform, platform_id, username, group_id, gold, premium, exp, level,
	fishing_count, total_fish_weight, total_income, last_fishing_time, auto_fishing,
	fish_pond_capacity, current_bait_id, current_title_id, sign_in_streak, last_sign_in, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Platform, &u.PlatformID, &u.Username, &u.GroupID,
		&u.Gold, &u.Premium, &u.Exp, &u.Level,
		&u.FishingCount, &u.TotalFishWeight, &u.TotalIncome, &u.LastFishingTime, &u.AutoFishing,
		&u.FishPondCapacity, &u.CurrentBaitID, &u.CurrentTitleID, &u.SignInStreak, &u.LastSignIn, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func getUser(ctx context.Context, q querier, where string, args ...any) (*domain.User, error) {
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, args...))
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound, ErrMsgFailedToGetUser)
	}
	return u, nil
}

func (t *tx) InsertUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO users (user_id, platform, platform_id, username, group_id, exp, level,
			auto_fishing, fish_pond_capacity, current_bait_id, current_title_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		u.ID, u.Platform, u.PlatformID, u.Username, u.GroupID, u.Exp, u.Level,
		u.AutoFishing, u.FishPondCapacity, u.CurrentBaitID, u.CurrentTitleID,
	).Scan(&u.CreatedAt)
	if isUniqueViolation(err, constraintUserPlatform) {
		return domain.ErrUserAlreadyExists
	}
	return wrap(ErrMsgFailedToInsertUser, err)
}

func (t *tx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, t.tx, `WHERE user_id = $1 FOR UPDATE`, userID)
}

func (t *tx) UpdateUser(ctx context.Context, u *domain.User) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE users SET
			username = $2, group_id = $3, exp = $4, level = $5,
			fishing_count = $6, total_fish_weight = $7, total_income = $8, last_fishing_time = $9,
			auto_fishing = $10, fish_pond_capacity = $11, current_bait_id = $12, current_title_id = $13,
			sign_in_streak = $14, last_sign_in = $15
		WHERE user_id = $1`,
		u.ID, u.Username, u.GroupID, u.Exp, u.Level,
		u.FishingCount, u.TotalFishWeight, u.TotalIncome, u.LastFishingTime,
		u.AutoFishing, u.FishPondCapacity, u.CurrentBaitID, u.CurrentTitleID,
		u.SignInStreak, u.LastSignIn,
	)
	if err != nil {
		return wrap(ErrMsgFailedToUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Ledger

func (t *tx) CreditGold(ctx context.Context, userID string, amount int64) (int64, error) {
	return t.moveBalance(ctx, `UPDATE users SET gold = gold + $2 WHERE user_id = $1 RETURNING gold`, userID, amount)
}

// DebitGold is one conditional statement; a zero-row result is either a
// missing user or an uncovered balance
func (t *tx) DebitGold(ctx context.Context, userID string, amount int64) (int64, error) {
	balance, err := t.moveBalance(ctx,
		`UPDATE users SET gold = gold - $2 WHERE user_id = $1 AND gold >= $2 RETURNING gold`, userID, amount)
	if !errors.Is(err, domain.ErrUserNotFound) {
		return balance, err
	}
	var current int64
	if err := t.tx.QueryRow(ctx, `SELECT gold FROM users WHERE user_id = $1`, userID).Scan(&current); err != nil {
		return 0, notFound(err, domain.ErrUserNotFound, ErrMsgFailedToMoveBalance)
	}
	return current, domain.ErrInsufficientFunds
}

func (t *tx) CreditPremium(ctx context.Context, userID string, amount int64) (int64, error) {
	return t.moveBalance(ctx, `UPDATE users SET premium = premium + $2 WHERE user_id = $1 RETURNING premium`, userID, amount)
}

func (t *tx) moveBalance(ctx context.Context, sql, userID string, amount int64) (int64, error) {
	var balance int64
	if err := t.tx.QueryRow(ctx, sql, userID, amount).Scan(&balance); err != nil {
		return 0, notFound(err, domain.ErrUserNotFound, ErrMsgFailedToMoveBalance)
	}
	return balance, nil
}
