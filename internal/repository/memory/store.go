// Package memory is an in-process repository.Store. Transactions are
// serialized by a writer mutex and work on a private copy of the state that
// replaces the committed state on Commit, so Rollback is free and readers never
// observe partial writes. It backs unit tests and STORAGE=memory dev runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/repository"
)

type baitKey struct {
	userID string
	baitID int
}

type state struct {
	users        map[string]*domain.User
	platformIdx  map[string]string
	rods         map[int64]*domain.RodInstance
	accessories  map[int64]*domain.AccessoryInstance
	baits        map[baitKey]int
	catches      map[int64]*domain.FishCatch
	techs        map[string]map[int]time.Time
	achievements map[string]map[int]domain.AchievementProgress
	titles       map[string]map[int]bool
	listings     map[int64]*domain.MarketListing

	fishingLogs []domain.FishingLog
	gachaLogs   []domain.GachaLog
	signInLogs  []domain.SignInLog
	wagerLogs   []domain.WagerLog

	nextID int64
}

func newState() *state {
	return &state{
		users:        make(map[string]*domain.User),
		platformIdx:  make(map[string]string),
		rods:         make(map[int64]*domain.RodInstance),
		accessories:  make(map[int64]*domain.AccessoryInstance),
		baits:        make(map[baitKey]int),
		catches:      make(map[int64]*domain.FishCatch),
		techs:        make(map[string]map[int]time.Time),
		achievements: make(map[string]map[int]domain.AchievementProgress),
		titles:       make(map[string]map[int]bool),
		listings:     make(map[int64]*domain.MarketListing),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		u := v.Clone()
		c.users[k] = &u
	}
	for k, v := range s.platformIdx {
		c.platformIdx[k] = v
	}
	for k, v := range s.rods {
		r := copyRod(v)
		c.rods[k] = &r
	}
	for k, v := range s.accessories {
		a := *v
		c.accessories[k] = &a
	}
	for k, v := range s.baits {
		c.baits[k] = v
	}
	for k, v := range s.catches {
		f := *v
		c.catches[k] = &f
	}
	for u, m := range s.techs {
		cm := make(map[int]time.Time, len(m))
		for k, v := range m {
			cm[k] = v
		}
		c.techs[u] = cm
	}
	for u, m := range s.achievements {
		cm := make(map[int]domain.AchievementProgress, len(m))
		for k, v := range m {
			cm[k] = v
		}
		c.achievements[u] = cm
	}
	for u, m := range s.titles {
		cm := make(map[int]bool, len(m))
		for k, v := range m {
			cm[k] = v
		}
		c.titles[u] = cm
	}
	for k, v := range s.listings {
		l := *v
		c.listings[k] = &l
	}
	// capped slices force appends inside the tx onto fresh arrays
	c.fishingLogs = s.fishingLogs[:len(s.fishingLogs):len(s.fishingLogs)]
	c.gachaLogs = s.gachaLogs[:len(s.gachaLogs):len(s.gachaLogs)]
	c.signInLogs = s.signInLogs[:len(s.signInLogs):len(s.signInLogs)]
	c.wagerLogs = s.wagerLogs[:len(s.wagerLogs):len(s.wagerLogs)]
	c.nextID = s.nextID
	return c
}

func (s *state) newID() int64 {
	s.nextID++
	return s.nextID
}

// Store is the in-memory repository.Store
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   *state
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

// BeginTx blocks until no other transaction is open
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.writeMu.Lock()

	s.mu.RLock()
	working := s.state.clone()
	s.mu.RUnlock()

	return &tx{store: s, st: working}, nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) read() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// GetUserByID returns a copy of the committed user
func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := u.Clone()
	return &c, nil
}

// GetUserByPlatformID returns a copy of the committed user
func (s *Store) GetUserByPlatformID(ctx context.Context, platform, platformID string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.state.platformIdx[platformKey(platform, platformID)]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.GetUserByID(ctx, id)
}

// ListAutoFishingUserIDs returns flagged users in a stable order
func (s *Store) ListAutoFishingUserIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id, u := range s.state.users {
		if u.AutoFishing {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// GetInventory returns every instance the user owns
func (s *Store) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if _, ok := st.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	inv := &domain.Inventory{
		Rods:        st.listRods(userID),
		Accessories: st.listAccessories(userID),
		Baits:       st.listBaits(userID),
	}
	for _, c := range st.catches {
		if c.UserID == userID {
			inv.Fish = append(inv.Fish, *c)
		}
	}
	sort.Slice(inv.Fish, func(i, j int) bool { return inv.Fish[i].ID < inv.Fish[j].ID })
	return inv, nil
}

// ListUserTechnologyIDs returns unlocked technology ids, sorted
func (s *Store) ListUserTechnologyIDs(ctx context.Context, userID string) ([]int, error) {
	return s.read().techIDs(userID), nil
}

// ListAchievementProgress returns the user's progress rows
func (s *Store) ListAchievementProgress(ctx context.Context, userID string) ([]domain.AchievementProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.progress(userID), nil
}

// ListTitleIDs returns owned titles, sorted
func (s *Store) ListTitleIDs(ctx context.Context, userID string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []int
	for id := range s.state.titles[userID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// BrowseListings returns live listings matching filter, cheapest first
func (s *Store) BrowseListings(ctx context.Context, f domain.MarketFilter, now time.Time) ([]domain.MarketListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.MarketListing
	for _, l := range s.state.listings {
		switch {
		case l.Expired(now):
			continue
		case f.ItemType != "" && l.ItemType != f.ItemType:
			continue
		case f.TemplateID != 0 && l.TemplateID != f.TemplateID:
			continue
		case f.SellerID != "" && l.SellerID != f.SellerID:
			continue
		case f.MaxPrice > 0 && l.Price > f.MaxPrice:
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= uint64(len(out)) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && uint64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func platformKey(platform, platformID string) string {
	return platform + ":" + platformID
}

func (s *state) techIDs(userID string) []int {
	var ids []int
	for id := range s.techs[userID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *state) progress(userID string) []domain.AchievementProgress {
	var out []domain.AchievementProgress
	for _, p := range s.achievements[userID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out
}

func (s *state) listRods(userID string) []domain.RodInstance {
	var out []domain.RodInstance
	for _, r := range s.rods {
		if r.UserID == userID {
			out = append(out, copyRod(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) listAccessories(userID string) []domain.AccessoryInstance {
	var out []domain.AccessoryInstance
	for _, a := range s.accessories {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) listBaits(userID string) []domain.BaitStack {
	var out []domain.BaitStack
	for k, q := range s.baits {
		if k.userID == userID {
			out = append(out, domain.BaitStack{UserID: userID, BaitID: k.baitID, Quantity: q})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BaitID < out[j].BaitID })
	return out
}

func copyRod(r *domain.RodInstance) domain.RodInstance {
	c := *r
	if r.Durability != nil {
		d := *r.Durability
		c.Durability = &d
	}
	return c
}
