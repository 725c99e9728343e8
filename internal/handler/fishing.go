package handler

import (
	"net/http"
	"time"

	"github.com/osse101/FishBot_Go/internal/fishing"
)

// CooldownResponse reports time until the next fishing attempt
type CooldownResponse struct {
	Ready            bool    `json:"ready"`
	RemainingSeconds float64 `json:"remaining_seconds"`
}

// HandleFish runs one fishing attempt
// @Summary Fish
// @Description Run one fishing attempt with the equipped rod, accessory and bait
// @Tags fishing
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} domain.FishingResult
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 422 {object} ErrorResponse "No rod equipped or pond full"
// @Failure 429 {object} ErrorResponse "Cooldown"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/fish [post]
func HandleFish(svc fishing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Fish(r.Context(), userID(r))
		if err != nil {
			respondServiceError(w, r, "Fish", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// @Summary Fishing cooldown
// @Tags fishing
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} CooldownResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/fish/cooldown [get]
func HandleFishingCooldown(svc fishing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		left, err := svc.CooldownRemaining(r.Context(), userID(r))
		if err != nil {
			respondServiceError(w, r, "Fishing cooldown", err)
			return
		}
		respondJSON(w, http.StatusOK, CooldownResponse{
			Ready:            left <= 0,
			RemainingSeconds: left.Round(time.Second).Seconds(),
		})
	}
}
