package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func (t *tx) InsertFishingLog(ctx context.Context, l *domain.FishingLog) error {
	return wrap(ErrMsgFailedToInsertLog, t.tx.QueryRow(ctx, `
		INSERT INTO fishing_logs (user_id, fish_id, success, weight_grams, value, fee, exp_gained, auto, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		l.UserID, l.FishID, l.Success, l.WeightGrams, l.Value, l.Fee, l.ExpGained, l.Auto, l.CreatedAt,
	).Scan(&l.ID))
}

// InsertGachaLogs writes a ten-draw as one multi-row insert
func (t *tx) InsertGachaLogs(ctx context.Context, logs []domain.GachaLog) error {
	if len(logs) == 0 {
		return nil
	}
	b := psql.Insert("gacha_logs").Columns("user_id", "pool_id", "item_type", "template_id", "rarity", "drawn_at")
	for _, l := range logs {
		b = b.Values(l.UserID, l.PoolID, string(l.ItemType), l.TemplateID, l.Rarity, l.DrawnAt)
	}
	_, err := execBuilder(ctx, t.tx, b)
	return wrap(ErrMsgFailedToInsertLog, err)
}

func (t *tx) InsertSignInLog(ctx context.Context, l *domain.SignInLog) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO sign_in_logs (user_id, reward, streak, signed_in_at) VALUES ($1, $2, $3, $4)`,
		l.UserID, l.Reward, l.Streak, l.SignedInAt)
	return wrap(ErrMsgFailedToInsertLog, err)
}

func (t *tx) InsertWagerLog(ctx context.Context, l *domain.WagerLog) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO wager_logs (user_id, stake, multiplier, payout, created_at) VALUES ($1, $2, $3, $4, $5)`,
		l.UserID, l.Stake, l.Multiplier, l.Payout, l.CreatedAt)
	return wrap(ErrMsgFailedToInsertLog, err)
}

func (t *tx) CatchCountsByFish(ctx context.Context, userID string) (map[int]int64, error) {
	rows, err := queryBuilder(ctx, t.tx, psql.
		Select("fish_id", "COUNT(*)").
		From("fishing_logs").
		Where(sq.Eq{"user_id": userID, "success": true}).
		Where(sq.NotEq{"fish_id": nil}).
		GroupBy("fish_id"))
	if err != nil {
		return nil, wrap(ErrMsgFailedToAggregate, err)
	}
	counts := make(map[int]int64)
	var fishID int
	var n int64
	_, err = pgx.ForEachRow(rows, []any{&fishID, &n}, func() error {
		counts[fishID] = n
		return nil
	})
	if err != nil {
		return nil, wrap(ErrMsgFailedToAggregate, err)
	}
	return counts, nil
}

func (t *tx) MaxCatchWeight(ctx context.Context, userID string) (int, error) {
	var w int
	err := t.tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(weight_grams), 0) FROM fishing_logs WHERE user_id = $1 AND success`, userID).Scan(&w)
	return w, wrap(ErrMsgFailedToAggregate, err)
}

func (t *tx) MaxWagerMultiplier(ctx context.Context, userID string) (float64, error) {
	var m float64
	err := t.tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(multiplier), 0) FROM wager_logs WHERE user_id = $1`, userID).Scan(&m)
	return m, wrap(ErrMsgFailedToAggregate, err)
}
