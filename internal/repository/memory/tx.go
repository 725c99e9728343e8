package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/repository"
)

type tx struct {
	store *Store
	st    *state
	done  bool
}

var _ repository.Tx = (*tx)(nil)

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true

	t.store.mu.Lock()
	t.store.state = t.st
	t.store.mu.Unlock()
	t.store.writeMu.Unlock()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true
	t.store.writeMu.Unlock()
	return nil
}

// Users

func (t *tx) InsertUser(ctx context.Context, user *domain.User) error {
	key := platformKey(user.Platform, user.PlatformID)
	if _, exists := t.st.platformIdx[key]; exists {
		return domain.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	c := user.Clone()
	t.st.users[user.ID] = &c
	t.st.platformIdx[key] = user.ID
	return nil
}

func (t *tx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := u.Clone()
	return &c, nil
}

func (t *tx) UpdateUser(ctx context.Context, user *domain.User) error {
	cur, ok := t.st.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	c := user.Clone()
	c.Gold = cur.Gold
	c.Premium = cur.Premium
	c.Platform = cur.Platform
	c.PlatformID = cur.PlatformID
	c.CreatedAt = cur.CreatedAt
	t.st.users[user.ID] = &c
	return nil
}

// Ledger

func (t *tx) CreditGold(ctx context.Context, userID string, amount int64) (int64, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Gold += amount
	return u.Gold, nil
}

func (t *tx) DebitGold(ctx context.Context, userID string, amount int64) (int64, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Gold < amount {
		return u.Gold, domain.ErrInsufficientFunds
	}
	u.Gold -= amount
	return u.Gold, nil
}

func (t *tx) CreditPremium(ctx context.Context, userID string, amount int64) (int64, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Premium += amount
	return u.Premium, nil
}

// Rods

func (t *tx) InsertRod(ctx context.Context, rod *domain.RodInstance) error {
	if rod.IsEquipped {
		for _, r := range t.st.rods {
			if r.UserID == rod.UserID && r.IsEquipped {
				return domain.ErrAlreadyEquipped
			}
		}
	}
	rod.ID = t.st.newID()
	if rod.ObtainedAt.IsZero() {
		rod.ObtainedAt = time.Now().UTC()
	}
	c := copyRod(rod)
	t.st.rods[rod.ID] = &c
	return nil
}

func (t *tx) GetRod(ctx context.Context, rodID int64) (*domain.RodInstance, error) {
	r, ok := t.st.rods[rodID]
	if !ok {
		return nil, fmt.Errorf("%w: rod %d", domain.ErrInstanceNotFound, rodID)
	}
	c := copyRod(r)
	return &c, nil
}

func (t *tx) ListRods(ctx context.Context, userID string) ([]domain.RodInstance, error) {
	return t.st.listRods(userID), nil
}

func (t *tx) GetEquippedRod(ctx context.Context, userID string) (*domain.RodInstance, error) {
	for _, r := range t.st.rods {
		if r.UserID == userID && r.IsEquipped {
			c := copyRod(r)
			return &c, nil
		}
	}
	return nil, nil
}

func (t *tx) EquipRod(ctx context.Context, userID string, rodID int64) error {
	target, ok := t.st.rods[rodID]
	if !ok || target.UserID != userID {
		return domain.ErrNotOwned
	}
	for _, r := range t.st.rods {
		if r.UserID == userID {
			r.IsEquipped = false
		}
	}
	target.IsEquipped = true
	return nil
}

func (t *tx) UnequipRod(ctx context.Context, userID string) error {
	for _, r := range t.st.rods {
		if r.UserID == userID {
			r.IsEquipped = false
		}
	}
	return nil
}

func (t *tx) UpdateRodDurability(ctx context.Context, rodID int64, durability *int) error {
	r, ok := t.st.rods[rodID]
	if !ok {
		return fmt.Errorf("%w: rod %d", domain.ErrInstanceNotFound, rodID)
	}
	if durability == nil {
		r.Durability = nil
		return nil
	}
	d := *durability
	r.Durability = &d
	return nil
}

// Accessories

func (t *tx) InsertAccessory(ctx context.Context, acc *domain.AccessoryInstance) error {
	acc.ID = t.st.newID()
	if acc.ObtainedAt.IsZero() {
		acc.ObtainedAt = time.Now().UTC()
	}
	c := *acc
	t.st.accessories[acc.ID] = &c
	return nil
}

func (t *tx) GetAccessory(ctx context.Context, accID int64) (*domain.AccessoryInstance, error) {
	a, ok := t.st.accessories[accID]
	if !ok {
		return nil, fmt.Errorf("%w: accessory %d", domain.ErrInstanceNotFound, accID)
	}
	c := *a
	return &c, nil
}

func (t *tx) ListAccessories(ctx context.Context, userID string) ([]domain.AccessoryInstance, error) {
	return t.st.listAccessories(userID), nil
}

func (t *tx) GetEquippedAccessory(ctx context.Context, userID string) (*domain.AccessoryInstance, error) {
	for _, a := range t.st.accessories {
		if a.UserID == userID && a.IsEquipped {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (t *tx) EquipAccessory(ctx context.Context, userID string, accID int64) error {
	target, ok := t.st.accessories[accID]
	if !ok || target.UserID != userID {
		return domain.ErrNotOwned
	}
	for _, a := range t.st.accessories {
		if a.UserID == userID {
			a.IsEquipped = false
		}
	}
	target.IsEquipped = true
	return nil
}

// Bait

func (t *tx) AddBait(ctx context.Context, userID string, baitID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidAmount
	}
	t.st.baits[baitKey{userID, baitID}] += quantity
	return nil
}

func (t *tx) ConsumeBait(ctx context.Context, userID string, baitID, quantity int) (int, error) {
	k := baitKey{userID, baitID}
	have := t.st.baits[k]
	if have < quantity {
		return have, domain.ErrInsufficientBait
	}
	left := have - quantity
	if left == 0 {
		delete(t.st.baits, k)
	} else {
		t.st.baits[k] = left
	}
	return left, nil
}

func (t *tx) GetBaitQuantity(ctx context.Context, userID string, baitID int) (int, error) {
	return t.st.baits[baitKey{userID, baitID}], nil
}

// Fish

func (t *tx) InsertCatch(ctx context.Context, catch *domain.FishCatch) error {
	catch.ID = t.st.newID()
	if catch.CaughtAt.IsZero() {
		catch.CaughtAt = time.Now().UTC()
	}
	c := *catch
	t.st.catches[catch.ID] = &c
	return nil
}

func (t *tx) GetCatch(ctx context.Context, catchID int64) (*domain.FishCatch, error) {
	c, ok := t.st.catches[catchID]
	if !ok {
		return nil, fmt.Errorf("%w: catch %d", domain.ErrInstanceNotFound, catchID)
	}
	cp := *c
	return &cp, nil
}

func (t *tx) ListCatches(ctx context.Context, userID string) ([]domain.FishCatch, error) {
	var out []domain.FishCatch
	for _, c := range t.st.catches {
		if c.UserID == userID && !c.IsListed {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tx) CountPond(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, c := range t.st.catches {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (t *tx) DeleteCatches(ctx context.Context, userID string, catchIDs []int64) (int, error) {
	n := 0
	for _, id := range catchIDs {
		c, ok := t.st.catches[id]
		if !ok || c.UserID != userID || c.IsListed {
			continue
		}
		delete(t.st.catches, id)
		n++
	}
	return n, nil
}

// Escrow and transfer

func (t *tx) SetListed(ctx context.Context, itemType domain.ItemType, instanceID int64, listed bool) error {
	switch itemType {
	case domain.ItemTypeRod:
		r, ok := t.st.rods[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		r.IsListed = listed
	case domain.ItemTypeAccessory:
		a, ok := t.st.accessories[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		a.IsListed = listed
	case domain.ItemTypeFish:
		c, ok := t.st.catches[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		c.IsListed = listed
	default:
		return domain.ErrNotTradable
	}
	return nil
}

func (t *tx) TransferInstance(ctx context.Context, itemType domain.ItemType, instanceID int64, toUserID string) error {
	switch itemType {
	case domain.ItemTypeRod:
		r, ok := t.st.rods[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		r.UserID, r.IsEquipped, r.IsListed = toUserID, false, false
	case domain.ItemTypeAccessory:
		a, ok := t.st.accessories[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		a.UserID, a.IsEquipped, a.IsListed = toUserID, false, false
	case domain.ItemTypeFish:
		c, ok := t.st.catches[instanceID]
		if !ok {
			return domain.ErrInstanceNotFound
		}
		c.UserID, c.IsListed = toUserID, false
	default:
		return domain.ErrNotTradable
	}
	return nil
}

// Logs

func (t *tx) InsertFishingLog(ctx context.Context, log *domain.FishingLog) error {
	log.ID = t.st.newID()
	t.st.fishingLogs = append(t.st.fishingLogs, *log)
	return nil
}

func (t *tx) InsertGachaLogs(ctx context.Context, logs []domain.GachaLog) error {
	t.st.gachaLogs = append(t.st.gachaLogs, logs...)
	return nil
}

func (t *tx) InsertSignInLog(ctx context.Context, log *domain.SignInLog) error {
	t.st.signInLogs = append(t.st.signInLogs, *log)
	return nil
}

func (t *tx) InsertWagerLog(ctx context.Context, log *domain.WagerLog) error {
	t.st.wagerLogs = append(t.st.wagerLogs, *log)
	return nil
}

func (t *tx) CatchCountsByFish(ctx context.Context, userID string) (map[int]int64, error) {
	counts := make(map[int]int64)
	for _, l := range t.st.fishingLogs {
		if l.UserID == userID && l.Success && l.FishID != nil {
			counts[*l.FishID]++
		}
	}
	return counts, nil
}

func (t *tx) MaxCatchWeight(ctx context.Context, userID string) (int, error) {
	maxW := 0
	for _, l := range t.st.fishingLogs {
		if l.UserID == userID && l.Success && l.WeightGrams > maxW {
			maxW = l.WeightGrams
		}
	}
	return maxW, nil
}

func (t *tx) MaxWagerMultiplier(ctx context.Context, userID string) (float64, error) {
	maxM := 0.0
	for _, l := range t.st.wagerLogs {
		if l.UserID == userID && l.Multiplier > maxM {
			maxM = l.Multiplier
		}
	}
	return maxM, nil
}

// Technologies

func (t *tx) ListUserTechnologiesTx(ctx context.Context, userID string) ([]int, error) {
	return t.st.techIDs(userID), nil
}

func (t *tx) InsertUserTechnology(ctx context.Context, userID string, techID int, at time.Time) (bool, error) {
	m := t.st.techs[userID]
	if m == nil {
		m = make(map[int]time.Time)
		t.st.techs[userID] = m
	}
	if _, ok := m[techID]; ok {
		return false, nil
	}
	m[techID] = at
	return true, nil
}

// Achievements and titles

func (t *tx) ListAchievementProgressTx(ctx context.Context, userID string) ([]domain.AchievementProgress, error) {
	return t.st.progress(userID), nil
}

func (t *tx) UpsertAchievementProgress(ctx context.Context, p *domain.AchievementProgress) error {
	m := t.st.achievements[p.UserID]
	if m == nil {
		m = make(map[int]domain.AchievementProgress)
		t.st.achievements[p.UserID] = m
	}
	m[p.AchievementID] = *p
	return nil
}

func (t *tx) InsertTitle(ctx context.Context, userID string, titleID int) (bool, error) {
	m := t.st.titles[userID]
	if m == nil {
		m = make(map[int]bool)
		t.st.titles[userID] = m
	}
	if m[titleID] {
		return false, nil
	}
	m[titleID] = true
	return true, nil
}

func (t *tx) HasTitle(ctx context.Context, userID string, titleID int) (bool, error) {
	return t.st.titles[userID][titleID], nil
}

// Market

func (t *tx) InsertListing(ctx context.Context, listing *domain.MarketListing) error {
	listing.ID = t.st.newID()
	c := *listing
	t.st.listings[listing.ID] = &c
	return nil
}

func (t *tx) GetListingForPurchase(ctx context.Context, listingID int64, now time.Time) (*domain.MarketListing, error) {
	l, ok := t.st.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	if l.Expired(now) {
		return nil, domain.ErrListingExpired
	}
	c := *l
	return &c, nil
}

func (t *tx) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	return t.GetListingForUpdate(ctx, listingID)
}

func (t *tx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	l, ok := t.st.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	c := *l
	return &c, nil
}

func (t *tx) DeleteListing(ctx context.Context, listingID int64) error {
	if _, ok := t.st.listings[listingID]; !ok {
		return domain.ErrListingNotFound
	}
	delete(t.st.listings, listingID)
	return nil
}

func (t *tx) ClaimExpiredListings(ctx context.Context, now time.Time, limit int) ([]domain.MarketListing, error) {
	var out []domain.MarketListing
	for _, l := range t.st.listings {
		if l.Expired(now) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
