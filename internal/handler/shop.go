package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/economy"
)

// BuyRequest purchases a catalog item. Quantity only applies to bait.
type BuyRequest struct {
	ItemType   domain.ItemType `json:"item_type" validate:"required,oneof=rod accessory bait"`
	TemplateID int             `json:"template_id" validate:"required,gt=0"`
	Quantity   int             `json:"quantity" validate:"min=0"`
}

// SellFishRequest sells pond fish. Empty sells everything.
type SellFishRequest struct {
	Rarity  int   `json:"rarity" validate:"min=0,max=5"`
	CatchID int64 `json:"catch_id" validate:"min=0"`
}

// ShopHandlers serves purchases, fish sales and pond upgrades
type ShopHandlers struct {
	economy economy.Service
}

func NewShopHandlers(svc economy.Service) *ShopHandlers {
	return &ShopHandlers{economy: svc}
}

// @Summary List shop entries
// @Tags shop
// @Produce json
// @Success 200 {array} economy.ShopEntry
// @Security ApiKeyAuth
// @Router /api/v1/shop [get]
func (h *ShopHandlers) HandleEntries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.economy.ShopEntries())
}

// @Summary Buy from the shop
// @Description Buy a rod or accessory, or a quantity of bait
// @Tags shop
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body BuyRequest true "Item to buy"
// @Success 201 {object} domain.PurchaseResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 422 {object} ErrorResponse "Insufficient gold or not buyable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/shop/buy [post]
func (h *ShopHandlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	var req BuyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.economy.Buy(r.Context(), userID(r), req.ItemType, req.TemplateID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Buy item", err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// @Summary Sell pond fish
// @Description Sell one catch, every catch of a rarity, or the whole pond
// @Tags shop
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body SellFishRequest true "Sell filter"
// @Success 200 {object} domain.SellResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 422 {object} ErrorResponse "Nothing to sell"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/shop/sell [post]
func (h *ShopHandlers) HandleSellFish(w http.ResponseWriter, r *http.Request) {
	var req SellFishRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sell fish"); err != nil {
		return
	}

	result, err := h.economy.SellFish(r.Context(), userID(r), economy.SellFilter{Rarity: req.Rarity, CatchID: req.CatchID})
	if err != nil {
		respondServiceError(w, r, "Sell fish", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Upgrade pond capacity
// @Tags shop
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} domain.PondUpgradeResult
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 422 {object} ErrorResponse "Insufficient gold or max capacity"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/pond/upgrade [post]
func (h *ShopHandlers) HandleUpgradePond(w http.ResponseWriter, r *http.Request) {
	result, err := h.economy.UpgradePond(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "Upgrade pond", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
