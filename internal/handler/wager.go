package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/wager"
)

// WagerRequest stakes gold on the wipe bomb
type WagerRequest struct {
	Stake int64 `json:"stake" validate:"required,gt=0"`
}

// @Summary Wager on the wipe bomb
// @Tags wager
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body WagerRequest true "Stake"
// @Success 200 {object} domain.WagerResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 422 {object} ErrorResponse "Insufficient gold"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/wager [post]
func HandleWager(svc wager.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Wager"); err != nil {
			return
		}
		result, err := svc.Wager(r.Context(), userID(r), req.Stake)
		if err != nil {
			respondServiceError(w, r, "Wager", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleWagerTable exposes the multiplier odds
// @Summary Wager multiplier odds
// @Tags wager
// @Produce json
// @Success 200 {array} wager.Multiplier
// @Security ApiKeyAuth
// @Router /api/v1/wager/table [get]
func HandleWagerTable(svc wager.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Table())
	}
}
