package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/market"
)

// CreateListingRequest puts an owned instance up for sale
type CreateListingRequest struct {
	ItemType   domain.ItemType `json:"item_type" validate:"required,oneof=rod accessory fish"`
	InstanceID int64           `json:"instance_id" validate:"required,gt=0"`
	Price      int64           `json:"price" validate:"required,gt=0"`
}

// MarketHandlers serves the player market
type MarketHandlers struct {
	market market.Service
}

func NewMarketHandlers(svc market.Service) *MarketHandlers {
	return &MarketHandlers{market: svc}
}

// HandleBrowse lists active listings filtered by query parameters
// @Summary Browse market listings
// @Tags market
// @Produce json
// @Param item_type query string false "rod, accessory or fish"
// @Param name query string false "Name substring"
// @Param seller query string false "Seller user ID"
// @Param max_price query int false "Maximum price"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} market.Listing
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/market/listings [get]
func (h *MarketHandlers) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	itemType := domain.ItemType(q.Get(QueryItemType))
	switch itemType {
	case "", domain.ItemTypeRod, domain.ItemTypeAccessory, domain.ItemTypeFish:
	default:
		respondError(w, http.StatusBadRequest, "Invalid item_type query parameter")
		return
	}
	maxPrice, ok := optionalIntQuery(w, r, QueryMaxPrice)
	if !ok {
		return
	}
	limit, ok := optionalIntQuery(w, r, QueryLimit)
	if !ok {
		return
	}
	offset, ok := optionalIntQuery(w, r, QueryOffset)
	if !ok {
		return
	}

	listings, err := h.market.Browse(r.Context(), market.BrowseQuery{
		ItemType: itemType,
		Name:     q.Get(QueryName),
		SellerID: q.Get(QuerySeller),
		MaxPrice: maxPrice,
		Limit:    uint64(limit),
		Offset:   uint64(offset),
	})
	if err != nil {
		respondServiceError(w, r, "Browse market", err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// @Summary Create a listing
// @Description Put an owned rod, accessory or fish up for sale
// @Tags market
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body CreateListingRequest true "Listing details"
// @Success 201 {object} market.Listing
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Item not owned"
// @Failure 409 {object} ErrorResponse "Item already listed"
// @Failure 422 {object} ErrorResponse "Item not tradable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/market/listings [post]
func (h *MarketHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
		return
	}
	listing, err := h.market.List(r.Context(), userID(r), req.ItemType, req.InstanceID, req.Price)
	if err != nil {
		respondServiceError(w, r, "Create listing", err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

// @Summary Buy a listing
// @Tags market
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param listingID path int true "Listing ID"
// @Success 200 {object} market.Listing
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Failure 410 {object} ErrorResponse "Listing expired"
// @Failure 422 {object} ErrorResponse "Insufficient gold or own listing"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/market/listings/{listingID}/buy [post]
func (h *MarketHandlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, ParamListingID)
	if !ok {
		return
	}
	listing, err := h.market.Buy(r.Context(), userID(r), id)
	if err != nil {
		respondServiceError(w, r, "Buy listing", err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// @Summary Delist a listing
// @Tags market
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param listingID path int true "Listing ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Not the seller"
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/market/listings/{listingID} [delete]
func (h *MarketHandlers) HandleDelist(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, ParamListingID)
	if !ok {
		return
	}
	if err := h.market.Delist(r.Context(), userID(r), id); err != nil {
		respondServiceError(w, r, "Delist", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDelisted})
}
