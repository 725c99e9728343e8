package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/FishBot_Go/internal/domain"
)

const (
	rodColumns       = `id, user_id, template_id, level, durability, is_equipped, is_listed, obtained_at`
	accessoryColumns = `id, user_id, template_id, is_equipped, is_listed, obtained_at`
	catchColumns     = `id, user_id, fish_id, weight_grams, value, is_listed, caught_at`
)

func scanRod(row pgx.CollectableRow) (domain.RodInstance, error) {
	var r domain.RodInstance
	err := row.Scan(&r.ID, &r.UserID, &r.TemplateID, &r.Level, &r.Durability, &r.IsEquipped, &r.IsListed, &r.ObtainedAt)
	return r, err
}

func scanAccessory(row pgx.CollectableRow) (domain.AccessoryInstance, error) {
	var a domain.AccessoryInstance
	err := row.Scan(&a.ID, &a.UserID, &a.TemplateID, &a.IsEquipped, &a.IsListed, &a.ObtainedAt)
	return a, err
}

func scanCatch(row pgx.CollectableRow) (domain.FishCatch, error) {
	var c domain.FishCatch
	err := row.Scan(&c.ID, &c.UserID, &c.FishID, &c.WeightGrams, &c.Value, &c.IsListed, &c.CaughtAt)
	return c, err
}

// collectOne reads at most one row; nil, nil when there is none
func collectOne[T any](rows pgx.Rows, err error, fn pgx.RowToFunc[T]) (*T, error) {
	if err != nil {
		return nil, err
	}
	v, err := pgx.CollectOneRow(rows, fn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func listRods(ctx context.Context, q querier, userID string) ([]domain.RodInstance, error) {
	rows, err := q.Query(ctx, `SELECT `+rodColumns+` FROM rod_instances WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	out, err := pgx.CollectRows(rows, scanRod)
	return out, wrap(ErrMsgFailedToListInstances, err)
}

func listAccessories(ctx context.Context, q querier, userID string) ([]domain.AccessoryInstance, error) {
	rows, err := q.Query(ctx, `SELECT `+accessoryColumns+` FROM accessory_instances WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	out, err := pgx.CollectRows(rows, scanAccessory)
	return out, wrap(ErrMsgFailedToListInstances, err)
}

func listBaits(ctx context.Context, q querier, userID string) ([]domain.BaitStack, error) {
	rows, err := q.Query(ctx, `SELECT user_id, bait_id, quantity FROM bait_stacks WHERE user_id = $1 AND quantity > 0 ORDER BY bait_id`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BaitStack, error) {
		var b domain.BaitStack
		err := row.Scan(&b.UserID, &b.BaitID, &b.Quantity)
		return b, err
	})
	return out, wrap(ErrMsgFailedToListInstances, err)
}

func listCatches(ctx context.Context, q querier, userID string, includeListed bool) ([]domain.FishCatch, error) {
	b := psql.Select(catchColumns).From("fish_catches").Where(sq.Eq{"user_id": userID}).OrderBy("id")
	if !includeListed {
		b = b.Where(sq.Eq{"is_listed": false})
	}
	rows, err := queryBuilder(ctx, q, b)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListInstances, err)
	}
	out, err := pgx.CollectRows(rows, scanCatch)
	return out, wrap(ErrMsgFailedToListInstances, err)
}

// Rods

func (t *tx) InsertRod(ctx context.Context, r *domain.RodInstance) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO rod_instances (user_id, template_id, level, durability, is_equipped)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, obtained_at`,
		r.UserID, r.TemplateID, r.Level, r.Durability, r.IsEquipped,
	).Scan(&r.ID, &r.ObtainedAt)
	if isUniqueViolation(err, constraintRodEquipped) {
		return domain.ErrAlreadyEquipped
	}
	return wrap(ErrMsgFailedToInsertInstance, err)
}

func (t *tx) GetRod(ctx context.Context, rodID int64) (*domain.RodInstance, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+rodColumns+` FROM rod_instances WHERE id = $1 FOR UPDATE`, rodID)
	r, err := collectOne(rows, err, scanRod)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetInstance, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: rod %d", domain.ErrInstanceNotFound, rodID)
	}
	return r, nil
}

func (t *tx) ListRods(ctx context.Context, userID string) ([]domain.RodInstance, error) {
	return listRods(ctx, t.tx, userID)
}

func (t *tx) GetEquippedRod(ctx context.Context, userID string) (*domain.RodInstance, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+rodColumns+` FROM rod_instances WHERE user_id = $1 AND is_equipped FOR UPDATE`, userID)
	r, err := collectOne(rows, err, scanRod)
	return r, wrap(ErrMsgFailedToGetInstance, err)
}

func (t *tx) EquipRod(ctx context.Context, userID string, rodID int64) error {
	return t.equip(ctx, "rod_instances", userID, rodID)
}

func (t *tx) UnequipRod(ctx context.Context, userID string) error {
	_, err := t.tx.Exec(ctx, `UPDATE rod_instances SET is_equipped = FALSE WHERE user_id = $1 AND is_equipped`, userID)
	return wrap(ErrMsgFailedToEquip, err)
}

func (t *tx) UpdateRodDurability(ctx context.Context, rodID int64, durability *int) error {
	tag, err := t.tx.Exec(ctx, `UPDATE rod_instances SET durability = $2 WHERE id = $1`, rodID, durability)
	if err != nil {
		return wrap(ErrMsgFailedToUpdateInstance, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: rod %d", domain.ErrInstanceNotFound, rodID)
	}
	return nil
}

// equip clears the slot then sets the target, which must belong to userID
func (t *tx) equip(ctx context.Context, table, userID string, id int64) error {
	var owner string
	err := t.tx.QueryRow(ctx, `SELECT user_id FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && owner != userID) {
		return domain.ErrNotOwned
	}
	if err != nil {
		return wrap(ErrMsgFailedToEquip, err)
	}
	if _, err := t.tx.Exec(ctx, `UPDATE `+table+` SET is_equipped = FALSE WHERE user_id = $1 AND is_equipped`, userID); err != nil {
		return wrap(ErrMsgFailedToEquip, err)
	}
	_, err = t.tx.Exec(ctx, `UPDATE `+table+` SET is_equipped = TRUE WHERE id = $1`, id)
	return wrap(ErrMsgFailedToEquip, err)
}

// Accessories

func (t *tx) InsertAccessory(ctx context.Context, a *domain.AccessoryInstance) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO accessory_instances (user_id, template_id, is_equipped)
		VALUES ($1, $2, $3)
		RETURNING id, obtained_at`,
		a.UserID, a.TemplateID, a.IsEquipped,
	).Scan(&a.ID, &a.ObtainedAt)
	if isUniqueViolation(err, constraintAccessoryEquipped) {
		return domain.ErrAlreadyEquipped
	}
	return wrap(ErrMsgFailedToInsertInstance, err)
}

func (t *tx) GetAccessory(ctx context.Context, accID int64) (*domain.AccessoryInstance, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+accessoryColumns+` FROM accessory_instances WHERE id = $1 FOR UPDATE`, accID)
	a, err := collectOne(rows, err, scanAccessory)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetInstance, err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: accessory %d", domain.ErrInstanceNotFound, accID)
	}
	return a, nil
}

func (t *tx) ListAccessories(ctx context.Context, userID string) ([]domain.AccessoryInstance, error) {
	return listAccessories(ctx, t.tx, userID)
}

func (t *tx) GetEquippedAccessory(ctx context.Context, userID string) (*domain.AccessoryInstance, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+accessoryColumns+` FROM accessory_instances WHERE user_id = $1 AND is_equipped`, userID)
	a, err := collectOne(rows, err, scanAccessory)
	return a, wrap(ErrMsgFailedToGetInstance, err)
}

func (t *tx) EquipAccessory(ctx context.Context, userID string, accID int64) error {
	return t.equip(ctx, "accessory_instances", userID, accID)
}

// Bait

func (t *tx) AddBait(ctx context.Context, userID string, baitID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidAmount
	}
	_, err := t.tx.Exec(ctx, `
		INSERT INTO bait_stacks (user_id, bait_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, bait_id) DO UPDATE SET quantity = bait_stacks.quantity + EXCLUDED.quantity`,
		userID, baitID, quantity)
	return wrap(ErrMsgFailedToUpdateBait, err)
}

// ConsumeBait is a conditional decrement; an emptied stack is deleted in the same tx
func (t *tx) ConsumeBait(ctx context.Context, userID string, baitID, quantity int) (int, error) {
	var left int
	err := t.tx.QueryRow(ctx, `
		UPDATE bait_stacks SET quantity = quantity - $3
		WHERE user_id = $1 AND bait_id = $2 AND quantity >= $3
		RETURNING quantity`, userID, baitID, quantity).Scan(&left)
	if errors.Is(err, pgx.ErrNoRows) {
		have, qErr := t.GetBaitQuantity(ctx, userID, baitID)
		if qErr != nil {
			return 0, qErr
		}
		return have, domain.ErrInsufficientBait
	}
	if err != nil {
		return 0, wrap(ErrMsgFailedToUpdateBait, err)
	}
	if left == 0 {
		if _, err := t.tx.Exec(ctx, `DELETE FROM bait_stacks WHERE user_id = $1 AND bait_id = $2`, userID, baitID); err != nil {
			return 0, wrap(ErrMsgFailedToUpdateBait, err)
		}
	}
	return left, nil
}

func (t *tx) GetBaitQuantity(ctx context.Context, userID string, baitID int) (int, error) {
	var q int
	err := t.tx.QueryRow(ctx, `SELECT quantity FROM bait_stacks WHERE user_id = $1 AND bait_id = $2`, userID, baitID).Scan(&q)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return q, wrap(ErrMsgFailedToUpdateBait, err)
}

// Fish

func (t *tx) InsertCatch(ctx context.Context, c *domain.FishCatch) error {
	return wrap(ErrMsgFailedToInsertInstance, t.tx.QueryRow(ctx, `
		INSERT INTO fish_catches (user_id, fish_id, weight_grams, value)
		VALUES ($1, $2, $3, $4)
		RETURNING id, caught_at`,
		c.UserID, c.FishID, c.WeightGrams, c.Value,
	).Scan(&c.ID, &c.CaughtAt))
}

func (t *tx) GetCatch(ctx context.Context, catchID int64) (*domain.FishCatch, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+catchColumns+` FROM fish_catches WHERE id = $1 FOR UPDATE`, catchID)
	c, err := collectOne(rows, err, scanCatch)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetInstance, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: catch %d", domain.ErrInstanceNotFound, catchID)
	}
	return c, nil
}

func (t *tx) ListCatches(ctx context.Context, userID string) ([]domain.FishCatch, error) {
	return listCatches(ctx, t.tx, userID, false)
}

func (t *tx) CountPond(ctx context.Context, userID string) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM fish_catches WHERE user_id = $1`, userID).Scan(&n)
	return n, wrap(ErrMsgFailedToListInstances, err)
}

// DeleteCatches skips listed catches and catches owned by someone else
func (t *tx) DeleteCatches(ctx context.Context, userID string, catchIDs []int64) (int, error) {
	if len(catchIDs) == 0 {
		return 0, nil
	}
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM fish_catches WHERE user_id = $1 AND id = ANY($2) AND NOT is_listed`, userID, catchIDs)
	if err != nil {
		return 0, wrap(ErrMsgFailedToDeleteCatches, err)
	}
	return int(tag.RowsAffected()), nil
}

// Escrow and transfer

func (t *tx) SetListed(ctx context.Context, itemType domain.ItemType, instanceID int64, listed bool) error {
	table, err := instanceTable(itemType)
	if err != nil {
		return err
	}
	tag, err := execBuilder(ctx, t.tx, psql.Update(table).Set("is_listed", listed).Where(sq.Eq{"id": instanceID}))
	if err != nil {
		return wrap(ErrMsgFailedToUpdateInstance, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func (t *tx) TransferInstance(ctx context.Context, itemType domain.ItemType, instanceID int64, toUserID string) error {
	table, err := instanceTable(itemType)
	if err != nil {
		return err
	}
	b := psql.Update(table).Set("user_id", toUserID).Set("is_listed", false).Where(sq.Eq{"id": instanceID})
	if itemType != domain.ItemTypeFish {
		b = b.Set("is_equipped", false)
	}
	tag, err := execBuilder(ctx, t.tx, b)
	if err != nil {
		return wrap(ErrMsgFailedToUpdateInstance, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}
