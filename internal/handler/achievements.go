package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/achievement"
)

// @Summary List achievements
// @Description Every achievement with the caller's progress and completion
// @Tags achievements
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {array} achievement.Status
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/achievements [get]
func HandleAchievements(eval achievement.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := eval.List(r.Context(), userID(r))
		if err != nil {
			respondServiceError(w, r, "List achievements", err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}
