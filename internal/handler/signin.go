package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/signin"
)

// HandleSignIn claims the daily sign-in reward
// @Summary Daily sign-in
// @Tags signin
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} domain.SignInResult
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Already signed in today"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/signin [post]
func HandleSignIn(svc signin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.SignIn(r.Context(), userID(r))
		if err != nil {
			respondServiceError(w, r, "Sign in", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
