package economy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// ShopEntry is one purchasable template
type ShopEntry struct {
	ItemType   domain.ItemType `json:"item_type"`
	TemplateID int             `json:"template_id"`
	Name       string          `json:"name"`
	Rarity     int             `json:"rarity"`
	Price      int64           `json:"price"`
}

// SellFilter selects which pond fish to sell. Zero value sells everything.
type SellFilter struct {
	Rarity  int
	CatchID int64
}

// PondConfig is the capacity upgrade ladder
type PondConfig struct {
	Capacities []int
	Costs      []int64
}

// Service defines the interface for shop and balance operations
type Service interface {
	ShopEntries() []ShopEntry
	Buy(ctx context.Context, userID string, itemType domain.ItemType, templateID, quantity int) (*domain.PurchaseResult, error)
	SellFish(ctx context.Context, userID string, filter SellFilter) (*domain.SellResult, error)
	UpgradePond(ctx context.Context, userID string) (*domain.PondUpgradeResult, error)
	GrantGold(ctx context.Context, userID string, amount int64) (int64, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	ledger  *Ledger
	bus     event.Bus
	locks   *concurrency.LockManager
	pond    PondConfig
	now     func() time.Time
}

// NewService creates a new economy service
func NewService(store repository.Store, cat *catalog.Catalog, ledger *Ledger, bus event.Bus, locks *concurrency.LockManager, pond PondConfig) Service {
	return &service{
		store:   store,
		catalog: cat,
		ledger:  ledger,
		bus:     bus,
		locks:   locks,
		pond:    pond,
		now:     time.Now,
	}
}

// ShopEntries lists everything the shop sells, cheapest first within each type
func (s *service) ShopEntries() []ShopEntry {
	var out []ShopEntry
	for _, r := range s.catalog.Rods() {
		if r.Source == domain.RodSourceShop && r.PurchaseCost != nil {
			out = append(out, ShopEntry{domain.ItemTypeRod, r.ID, r.Name, r.Rarity, *r.PurchaseCost})
		}
	}
	for _, a := range s.catalog.Accessories() {
		if a.PurchaseCost != nil {
			out = append(out, ShopEntry{domain.ItemTypeAccessory, a.ID, a.Name, a.Rarity, *a.PurchaseCost})
		}
	}
	for _, b := range s.catalog.Baits() {
		if b.Cost > 0 {
			out = append(out, ShopEntry{domain.ItemTypeBait, b.ID, b.Name, b.Rarity, b.Cost})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ItemType != out[j].ItemType {
			return out[i].ItemType < out[j].ItemType
		}
		return out[i].Price < out[j].Price
	})
	return out
}

// price resolves the unit price and display name, or ErrNotBuyable
func (s *service) price(itemType domain.ItemType, templateID int) (int64, string, error) {
	switch itemType {
	case domain.ItemTypeRod:
		r, err := s.catalog.Rod(templateID)
		if err != nil {
			return 0, "", err
		}
		if r.Source != domain.RodSourceShop || r.PurchaseCost == nil {
			return 0, "", fmt.Errorf(ErrMsgNotBuyableFmt, r.Name, domain.ErrNotBuyable)
		}
		return *r.PurchaseCost, r.Name, nil
	case domain.ItemTypeAccessory:
		a, err := s.catalog.Accessory(templateID)
		if err != nil {
			return 0, "", err
		}
		if a.PurchaseCost == nil {
			return 0, "", fmt.Errorf(ErrMsgNotBuyableFmt, a.Name, domain.ErrNotBuyable)
		}
		return *a.PurchaseCost, a.Name, nil
	case domain.ItemTypeBait:
		b, err := s.catalog.Bait(templateID)
		if err != nil {
			return 0, "", err
		}
		if b.Cost <= 0 {
			return 0, "", fmt.Errorf(ErrMsgNotBuyableFmt, b.Name, domain.ErrNotBuyable)
		}
		return b.Cost, b.Name, nil
	}
	return 0, "", fmt.Errorf("%w: item type %q", domain.ErrNotBuyable, itemType)
}

// Buy debits the total price and creates the goods in one transaction.
// Rods and accessories are bought one at a time.
func (s *service) Buy(ctx context.Context, userID string, itemType domain.ItemType, templateID, quantity int) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	if itemType != domain.ItemTypeBait {
		quantity = 1
	}
	if quantity <= 0 || quantity > MaxPurchaseQuantity {
		return nil, fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidInput)
	}

	unit, name, err := s.price(itemType, templateID)
	if err != nil {
		return nil, err
	}
	total := unit * int64(quantity)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	balance, err := s.ledger.Debit(ctx, tx, userID, total)
	if err != nil {
		return nil, err
	}

	result := &domain.PurchaseResult{
		ItemType:   itemType,
		TemplateID: templateID,
		Name:       name,
		Quantity:   quantity,
		Cost:       total,
		GoldAfter:  balance,
	}

	switch itemType {
	case domain.ItemTypeRod:
		tpl, _ := s.catalog.Rod(templateID)
		rod := NewRodInstance(userID, tpl, s.now())
		if err := tx.InsertRod(ctx, rod); err != nil {
			return nil, fmt.Errorf("failed to create rod: %w", err)
		}
		result.InstanceID = rod.ID
	case domain.ItemTypeAccessory:
		acc := &domain.AccessoryInstance{UserID: userID, TemplateID: templateID, ObtainedAt: s.now().UTC()}
		if err := tx.InsertAccessory(ctx, acc); err != nil {
			return nil, fmt.Errorf("failed to create accessory: %w", err)
		}
		result.InstanceID = acc.ID
	case domain.ItemTypeBait:
		if err := tx.AddBait(ctx, userID, templateID, quantity); err != nil {
			return nil, fmt.Errorf("failed to add bait: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgPurchase, "user_id", userID, "item_type", itemType, "template_id", templateID, "quantity", quantity, "cost", total)
	return result, nil
}

// SellFish sells unlisted pond fish at the value fixed when each was caught
func (s *service) SellFish(ctx context.Context, userID string, filter SellFilter) (*domain.SellResult, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	catches, err := tx.ListCatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list catches: %w", err)
	}

	var ids []int64
	var earned int64
	for _, c := range catches {
		if filter.CatchID != 0 && c.ID != filter.CatchID {
			continue
		}
		if filter.Rarity != 0 {
			fish, err := s.catalog.Fish(c.FishID)
			if err != nil || fish.Rarity != filter.Rarity {
				continue
			}
		}
		ids = append(ids, c.ID)
		earned += c.Value
	}
	if len(ids) == 0 {
		return nil, domain.ErrNothingToSell
	}

	deleted, err := tx.DeleteCatches(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to remove sold fish: %w", err)
	}
	if deleted != len(ids) {
		return nil, fmt.Errorf("%w: pond changed during sale", domain.ErrNothingToSell)
	}

	balance := user.Gold
	if earned > 0 {
		if balance, err = s.ledger.Credit(ctx, tx, userID, earned); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgFishSold, "user_id", userID, "count", len(ids), "earned", earned)
	event.PublishBestEffort(ctx, s.bus, event.New(event.FishSold, domain.FishSoldPayload{
		UserID: userID, Count: len(ids), Earned: earned,
	}))

	return &domain.SellResult{Count: len(ids), Earned: earned, GoldAfter: balance}, nil
}

// UpgradePond moves capacity to the next rung of the ladder above the current value
func (s *service) UpgradePond(ctx context.Context, userID string) (*domain.PondUpgradeResult, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	step := NextPondStep(s.pond, user.FishPondCapacity)
	if step < 0 {
		return nil, domain.ErrMaxPondCapacity
	}
	cost := s.pond.Costs[step]

	balance, err := s.ledger.Debit(ctx, tx, userID, cost)
	if err != nil {
		return nil, err
	}

	old := user.FishPondCapacity
	user.FishPondCapacity = s.pond.Capacities[step]
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgPondUpgrade, "user_id", userID, "from", old, "to", user.FishPondCapacity, "cost", cost)
	return &domain.PondUpgradeResult{OldCapacity: old, NewCapacity: user.FishPondCapacity, Cost: cost, GoldAfter: balance}, nil
}

// GrantGold credits gold outside gameplay, for admin tooling
func (s *service) GrantGold(ctx context.Context, userID string, amount int64) (int64, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return 0, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	balance, err := s.ledger.Credit(ctx, tx, userID, amount)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgGoldGranted, "user_id", userID, "amount", amount)
	return balance, nil
}

// NextPondStep returns the index of the first ladder rung above capacity, or -1
func NextPondStep(pond PondConfig, capacity int) int {
	for i, c := range pond.Capacities {
		if c > capacity && i < len(pond.Costs) {
			return i
		}
	}
	return -1
}

// NewRodInstance creates an unequipped level 1 rod carrying the template's durability
func NewRodInstance(userID string, tpl *domain.RodTemplate, now time.Time) *domain.RodInstance {
	rod := &domain.RodInstance{
		UserID:     userID,
		TemplateID: tpl.ID,
		Level:      1,
		ObtainedAt: now.UTC(),
	}
	if tpl.Durability != nil {
		d := *tpl.Durability
		rod.Durability = &d
	}
	return rod
}
