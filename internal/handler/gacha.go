package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/gacha"
)

// @Summary List gacha pools
// @Tags gacha
// @Produce json
// @Success 200 {array} domain.GachaPool
// @Security ApiKeyAuth
// @Router /api/v1/gacha/pools [get]
func HandleGachaPools(svc gacha.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Pools())
	}
}

// HandleGachaDraw serves both the single and ten-draw routes
// @Summary Draw from a gacha pool
// @Description Single draw or ten-draw with the guaranteed rare slot
// @Tags gacha
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param poolID path int true "Gacha pool ID"
// @Success 200 {object} domain.GachaResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "User or pool not found"
// @Failure 422 {object} ErrorResponse "Insufficient gold"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/gacha/{poolID}/single [post]
// @Router /api/v1/users/{platform}/{platformID}/gacha/{poolID}/ten [post]
func HandleGachaDraw(svc gacha.Service, ten bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poolID, ok := intParam(w, r, ParamPoolID)
		if !ok {
			return
		}

		var (
			result *domain.GachaResult
			err    error
		)
		if ten {
			result, err = svc.DrawTen(r.Context(), userID(r), int(poolID))
		} else {
			result, err = svc.DrawSingle(r.Context(), userID(r), int(poolID))
		}
		if err != nil {
			respondServiceError(w, r, "Gacha draw", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
