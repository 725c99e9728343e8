package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Status is one rule annotated with a user's progress
type Status struct {
	domain.Achievement
	RewardText  string     `json:"reward"`
	Progress    int64      `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Evaluator checks the fixed rule list for a user and pays out newly met rules
type Evaluator interface {
	Rules() []domain.Achievement
	Evaluate(ctx context.Context, userID string) ([]domain.Achievement, error)
	List(ctx context.Context, userID string) ([]Status, error)
}

type evaluator struct {
	store   repository.Store
	catalog *catalog.Catalog
	ledger  *economy.Ledger
	bus     event.Bus
	locks   *concurrency.LockManager
	rules   []domain.Achievement
	now     func() time.Time
}

// NewEvaluator creates an evaluator with the built-in rules
func NewEvaluator(store repository.Store, cat *catalog.Catalog, ledger *economy.Ledger, bus event.Bus, locks *concurrency.LockManager) Evaluator {
	return &evaluator{
		store:   store,
		catalog: cat,
		ledger:  ledger,
		bus:     bus,
		locks:   locks,
		rules:   defaultRules(cat),
		now:     time.Now,
	}
}

func (e *evaluator) Rules() []domain.Achievement {
	return e.rules
}

// Evaluate fires every incomplete rule whose statistic reached its threshold.
// Completed rows are never revisited, so rewards pay at most once.
func (e *evaluator) Evaluate(ctx context.Context, userID string) ([]domain.Achievement, error) {
	log := logger.FromContext(ctx)

	unlock := e.locks.Lock(userID)
	defer unlock()

	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	rows, err := tx.ListAchievementProgressTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadProgressFailed, err)
	}
	existing := make(map[int]domain.AchievementProgress, len(rows))
	for _, r := range rows {
		existing[r.AchievementID] = r
	}

	stats := newSnapshot(ctx, tx, e.catalog, user)
	now := e.now().UTC()
	var completed []domain.Achievement
	dirty := false

	for _, rule := range e.rules {
		row := existing[rule.ID]
		if row.Completed {
			continue
		}
		value, err := stats.get(rule.Stat)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgStatFailed, rule.Stat, err)
		}
		if value <= row.Progress && value < rule.Threshold {
			continue
		}

		row.UserID = userID
		row.AchievementID = rule.ID
		if value > row.Progress {
			row.Progress = value
		}
		if value >= rule.Threshold {
			row.Completed = true
			at := now
			row.CompletedAt = &at
			if err := e.grant(ctx, tx, userID, rule); err != nil {
				return nil, err
			}
			completed = append(completed, rule)
		}
		if err := tx.UpsertAchievementProgress(ctx, &row); err != nil {
			return nil, fmt.Errorf(ErrMsgSaveProgressFailed, rule.Key, err)
		}
		dirty = true
	}

	if !dirty {
		return nil, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	for _, a := range completed {
		log.Info(LogMsgCompleted, "user_id", userID, "achievement", a.Key, "reward", a.Reward.Kind())
		event.PublishBestEffort(ctx, e.bus, event.New(event.AchievementCompleted, domain.AchievementCompletedPayload{
			UserID: userID, Key: a.Key, Reward: a.Reward.Kind(),
		}))
	}
	return completed, nil
}

func (e *evaluator) grant(ctx context.Context, tx repository.Tx, userID string, rule domain.Achievement) error {
	var err error
	switch r := rule.Reward.(type) {
	case domain.CoinsReward:
		_, err = e.ledger.Credit(ctx, tx, userID, r.Amount)
	case domain.PremiumReward:
		_, err = e.ledger.CreditPremium(ctx, tx, userID, r.Amount)
	case domain.TitleReward:
		_, err = tx.InsertTitle(ctx, userID, r.TitleID)
	case domain.BaitReward:
		err = tx.AddBait(ctx, userID, r.BaitID, r.Quantity)
	}
	if err != nil {
		return fmt.Errorf(ErrMsgGrantFailed, rule.Reward.Kind(), rule.Key, err)
	}
	return nil
}

// List reports progress as last recorded; it does not evaluate
func (e *evaluator) List(ctx context.Context, userID string) ([]Status, error) {
	if _, err := e.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := e.store.ListAchievementProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadProgressFailed, err)
	}
	byID := make(map[int]domain.AchievementProgress, len(rows))
	for _, r := range rows {
		byID[r.AchievementID] = r
	}

	out := make([]Status, 0, len(e.rules))
	for _, rule := range e.rules {
		row := byID[rule.ID]
		out = append(out, Status{
			Achievement: rule,
			RewardText:  DescribeReward(e.catalog, rule.Reward),
			Progress:    row.Progress,
			Completed:   row.Completed,
			CompletedAt: row.CompletedAt,
		})
	}
	return out, nil
}
