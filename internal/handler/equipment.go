package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// EquipRequest names the instance (rod, accessory) or template (bait) to equip.
// Bait id 0 unequips bait.
type EquipRequest struct {
	ItemType   domain.ItemType `json:"item_type" validate:"required,oneof=rod accessory bait"`
	InstanceID int64           `json:"instance_id" validate:"required_unless=ItemType bait,min=0"`
	BaitID     int             `json:"bait_id" validate:"min=0"`
}

// HandleEquip equips a rod, accessory or bait
// @Summary Equip an item
// @Description Equip a rod or accessory instance, or a bait template (bait_id 0 unequips)
// @Tags equipment
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body EquipRequest true "Item to equip"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Item not owned"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 409 {object} ErrorResponse "Already equipped"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/equip [post]
func (h *UserHandlers) HandleEquip(w http.ResponseWriter, r *http.Request) {
	var req EquipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip"); err != nil {
		return
	}

	var err error
	switch req.ItemType {
	case domain.ItemTypeRod:
		err = h.users.EquipRod(r.Context(), userID(r), req.InstanceID)
	case domain.ItemTypeAccessory:
		err = h.users.EquipAccessory(r.Context(), userID(r), req.InstanceID)
	case domain.ItemTypeBait:
		err = h.users.EquipBait(r.Context(), userID(r), req.BaitID)
	}
	if err != nil {
		respondServiceError(w, r, "Equip", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEquipped})
}
