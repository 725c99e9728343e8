package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func listTechnologyIDs(ctx context.Context, q querier, userID string) ([]int, error) {
	rows, err := q.Query(ctx, `SELECT tech_id FROM user_technologies WHERE user_id = $1 ORDER BY tech_id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	return ids, wrap(ErrMsgFailedToListInstances, err)
}

func listProgress(ctx context.Context, q querier, userID string) ([]domain.AchievementProgress, error) {
	rows, err := q.Query(ctx, `
		SELECT user_id, achievement_id, progress, completed, completed_at
		FROM achievement_progress WHERE user_id = $1 ORDER BY achievement_id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AchievementProgress, error) {
		var p domain.AchievementProgress
		err := row.Scan(&p.UserID, &p.AchievementID, &p.Progress, &p.Completed, &p.CompletedAt)
		return p, err
	})
	return out, wrap(ErrMsgFailedToListInstances, err)
}

// Technologies

func (t *tx) ListUserTechnologiesTx(ctx context.Context, userID string) ([]int, error) {
	return listTechnologyIDs(ctx, t.tx, userID)
}

func (t *tx) InsertUserTechnology(ctx context.Context, userID string, techID int, at time.Time) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO user_technologies (user_id, tech_id, unlocked_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, tech_id) DO NOTHING`, userID, techID, at)
	if err != nil {
		return false, wrap(ErrMsgFailedToStoreUnlock, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Achievements

func (t *tx) ListAchievementProgressTx(ctx context.Context, userID string) ([]domain.AchievementProgress, error) {
	return listProgress(ctx, t.tx, userID)
}

func (t *tx) UpsertAchievementProgress(ctx context.Context, p *domain.AchievementProgress) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO achievement_progress (user_id, achievement_id, progress, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, achievement_id) DO UPDATE SET
			progress = EXCLUDED.progress,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at`,
		p.UserID, p.AchievementID, p.Progress, p.Completed, p.CompletedAt)
	return wrap(ErrMsgFailedToProgress, err)
}

// Titles

func (t *tx) InsertTitle(ctx context.Context, userID string, titleID int) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`INSERT INTO user_titles (user_id, title_id) VALUES ($1, $2) ON CONFLICT (user_id, title_id) DO NOTHING`,
		userID, titleID)
	if err != nil {
		return false, wrap(ErrMsgFailedToStoreUnlock, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *tx) HasTitle(ctx context.Context, userID string, titleID int) (bool, error) {
	var ok bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_titles WHERE user_id = $1 AND title_id = $2)`, userID, titleID).Scan(&ok)
	return ok, wrap(ErrMsgFailedToStoreUnlock, err)
}
