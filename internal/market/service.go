// Package market runs the player-to-player listing board. A listed instance
// is escrowed through its is_listed flag until bought, withdrawn or expired.
package market

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/concurrency"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/event"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/naming"
	"github.com/osse101/FishBot_Go/internal/repository"
	"github.com/osse101/FishBot_Go/internal/technology"
)

// FeatureGate reports whether a user unlocked a technology
type FeatureGate interface {
	IsUnlocked(ctx context.Context, userID, techKey string) (bool, error)
}

// Config controls listing lifetime
type Config struct {
	ListingDuration time.Duration
}

// BrowseQuery filters the board. Name is resolved fuzzily to a template.
type BrowseQuery struct {
	ItemType domain.ItemType
	Name     string
	SellerID string
	MaxPrice int64
	Limit    uint64
	Offset   uint64
}

// Listing is a listing decorated with its template's display data
type Listing struct {
	domain.MarketListing
	Name   string `json:"name"`
	Rarity int    `json:"rarity"`
}

// Service defines market operations
type Service interface {
	List(ctx context.Context, sellerID string, itemType domain.ItemType, instanceID int64, price int64) (*Listing, error)
	Browse(ctx context.Context, q BrowseQuery) ([]Listing, error)
	Buy(ctx context.Context, buyerID string, listingID int64) (*Listing, error)
	Delist(ctx context.Context, sellerID string, listingID int64) error
	// ExpireListings returns every expired listing's item to its seller
	ExpireListings(ctx context.Context) (int, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	names   naming.Resolver
	ledger  *economy.Ledger
	gate    FeatureGate
	bus     event.Bus
	locks   *concurrency.LockManager
	cfg     Config
	now     func() time.Time
}

// NewService creates a market service
func NewService(store repository.Store, cat *catalog.Catalog, names naming.Resolver, ledger *economy.Ledger, gate FeatureGate, bus event.Bus, locks *concurrency.LockManager, cfg Config) Service {
	if cfg.ListingDuration <= 0 {
		cfg.ListingDuration = DefaultListingDuration
	}
	return &service{
		store:   store,
		catalog: cat,
		names:   names,
		ledger:  ledger,
		gate:    gate,
		bus:     bus,
		locks:   locks,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *service) requireAccess(ctx context.Context, userID string) error {
	ok, err := s.gate.IsUnlocked(ctx, userID, technology.KeyMarketAccess)
	if err != nil {
		return fmt.Errorf(ErrMsgGateCheckFailed, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTechnologyUnavailable, technology.KeyMarketAccess)
	}
	return nil
}

func (s *service) decorate(ctx context.Context, l domain.MarketListing) Listing {
	name, rarity, err := s.catalog.TemplateInfo(l.ItemType, l.TemplateID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgNameMissing, "listing_id", l.ID, "error", err)
	}
	return Listing{MarketListing: l, Name: name, Rarity: rarity}
}

func (s *service) List(ctx context.Context, sellerID string, itemType domain.ItemType, instanceID int64, price int64) (*Listing, error) {
	if price <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if err := s.requireAccess(ctx, sellerID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sellerID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetUserForUpdate(ctx, sellerID); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}

	templateID, err := escrowable(ctx, tx, sellerID, itemType, instanceID)
	if err != nil {
		return nil, err
	}
	if err := tx.SetListed(ctx, itemType, instanceID, true); err != nil {
		return nil, fmt.Errorf(ErrMsgEscrowFailed, err)
	}

	now := s.now().UTC()
	listing := &domain.MarketListing{
		SellerID:   sellerID,
		ItemType:   itemType,
		InstanceID: instanceID,
		TemplateID: templateID,
		Price:      price,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.ListingDuration),
	}
	if err := tx.InsertListing(ctx, listing); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListed, "listing_id", listing.ID, "seller_id", sellerID, "item_type", itemType, "price", price)
	out := s.decorate(ctx, *listing)
	return &out, nil
}

// escrowable checks the instance belongs to userID and is free to list,
// returning its template id
func escrowable(ctx context.Context, tx repository.Tx, userID string, itemType domain.ItemType, instanceID int64) (int, error) {
	var owner string
	var templateID int
	var equipped, listed bool

	switch itemType {
	case domain.ItemTypeRod:
		r, err := tx.GetRod(ctx, instanceID)
		if err != nil {
			return 0, err
		}
		owner, templateID, equipped, listed = r.UserID, r.TemplateID, r.IsEquipped, r.IsListed
	case domain.ItemTypeAccessory:
		a, err := tx.GetAccessory(ctx, instanceID)
		if err != nil {
			return 0, err
		}
		owner, templateID, equipped, listed = a.UserID, a.TemplateID, a.IsEquipped, a.IsListed
	case domain.ItemTypeFish:
		c, err := tx.GetCatch(ctx, instanceID)
		if err != nil {
			return 0, err
		}
		owner, templateID, listed = c.UserID, c.FishID, c.IsListed
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrNotTradable, itemType)
	}

	switch {
	case owner != userID:
		return 0, domain.ErrNotOwned
	case listed:
		return 0, domain.ErrItemListed
	case equipped:
		return 0, domain.ErrAlreadyEquipped
	}
	return templateID, nil
}

func (s *service) Browse(ctx context.Context, q BrowseQuery) ([]Listing, error) {
	filter := domain.MarketFilter{
		ItemType: q.ItemType,
		SellerID: q.SellerID,
		MaxPrice: q.MaxPrice,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultBrowseLimit
	}
	if filter.Limit > MaxBrowseLimit {
		filter.Limit = MaxBrowseLimit
	}

	if q.Name != "" {
		m, ok := s.names.Resolve(q.Name, q.ItemType)
		if !ok {
			return nil, s.unknownName(q)
		}
		filter.ItemType = m.ItemType
		filter.TemplateID = m.TemplateID
	}

	rows, err := s.store.BrowseListings(ctx, filter, s.now().UTC())
	if err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(rows))
	for _, l := range rows {
		out = append(out, s.decorate(ctx, l))
	}
	return out, nil
}

func (s *service) unknownName(q BrowseQuery) error {
	near := s.names.Suggest(q.Name, q.ItemType, suggestionLimit)
	if len(near) == 0 {
		return fmt.Errorf("%w: "+ErrMsgUnknownName, domain.ErrTemplateNotFound, q.Name)
	}
	names := make([]string, len(near))
	for i, m := range near {
		names[i] = m.Name
	}
	return fmt.Errorf("%w: "+ErrMsgDidYouMean, domain.ErrTemplateNotFound, q.Name, strings.Join(names, ", "))
}

// Buy moves gold and the instance between the two users in one transaction.
// The listing is re-read with the expiry predicate under the row lock.
func (s *service) Buy(ctx context.Context, buyerID string, listingID int64) (*Listing, error) {
	if err := s.requireAccess(ctx, buyerID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(buyerID)
	listing, err := s.buy(ctx, buyerID, listingID)
	unlock()
	if err != nil {
		return nil, err
	}

	event.PublishBestEffort(ctx, s.bus, event.New(event.MarketSold, domain.MarketSoldPayload{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
		BuyerID:   buyerID,
		ItemType:  listing.ItemType,
		Price:     listing.Price,
	}))
	out := s.decorate(ctx, *listing)
	return &out, nil
}

func (s *service) buy(ctx context.Context, buyerID string, listingID int64) (*domain.MarketListing, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	peek, err := tx.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if peek.SellerID == buyerID {
		return nil, domain.ErrCannotBuyOwnListing
	}

	users, err := lockUsers(ctx, tx, buyerID, peek.SellerID)
	if err != nil {
		return nil, err
	}
	buyer := users[buyerID]

	listing, err := tx.GetListingForPurchase(ctx, listingID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if listing.ItemType == domain.ItemTypeFish {
		count, err := tx.CountPond(ctx, buyerID)
		if err != nil {
			return nil, err
		}
		if count >= buyer.FishPondCapacity {
			return nil, domain.ErrPondFull
		}
	}

	if _, err := s.ledger.Debit(ctx, tx, buyerID, listing.Price); err != nil {
		return nil, err
	}
	if _, err := s.ledger.Credit(ctx, tx, listing.SellerID, listing.Price); err != nil {
		return nil, err
	}
	if err := tx.TransferInstance(ctx, listing.ItemType, listing.InstanceID, buyerID); err != nil {
		return nil, fmt.Errorf(ErrMsgTransferFailed, err)
	}
	if err := tx.DeleteListing(ctx, listing.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgSold, "listing_id", listing.ID, "buyer_id", buyerID, "seller_id", listing.SellerID, "price", listing.Price)
	return listing, nil
}

// lockUsers row-locks every user in ascending id order, so two purchases
// between the same pair of users always lock in the same order.
func lockUsers(ctx context.Context, tx repository.Tx, ids ...string) (map[string]*domain.User, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make(map[string]*domain.User, len(sorted))
	for _, id := range sorted {
		u, err := tx.GetUserForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
		}
		users[id] = u
	}
	return users, nil
}

func (s *service) Delist(ctx context.Context, sellerID string, listingID int64) error {
	unlock := s.locks.Lock(sellerID)
	defer unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return domain.ErrNotOwned
	}
	if err := release(ctx, tx, *listing); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgDelisted, "listing_id", listingID, "seller_id", sellerID)
	return nil
}

// release clears escrow and removes the listing
func release(ctx context.Context, tx repository.Tx, l domain.MarketListing) error {
	if err := tx.SetListed(ctx, l.ItemType, l.InstanceID, false); err != nil && !errors.Is(err, domain.ErrInstanceNotFound) {
		return fmt.Errorf(ErrMsgEscrowFailed, err)
	}
	return tx.DeleteListing(ctx, l.ID)
}

func (s *service) ExpireListings(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := s.expireBatch(ctx)
		total += n
		if err != nil {
			return total, err
		}
		if n < ExpiryBatchSize {
			break
		}
	}
	if total > 0 {
		logger.FromContext(ctx).Info(LogMsgExpired, "count", total)
	}
	return total, nil
}

func (s *service) expireBatch(ctx context.Context) (int, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	expired, err := tx.ClaimExpiredListings(ctx, s.now().UTC(), ExpiryBatchSize)
	if err != nil {
		return 0, err
	}
	for _, l := range expired {
		if err := release(ctx, tx, l); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return len(expired), nil
}
