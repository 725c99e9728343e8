package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/technology"
	"github.com/osse101/FishBot_Go/internal/user"
	"github.com/osse101/FishBot_Go/internal/worker"
)

// GrantGoldRequest adds gold to a user
type GrantGoldRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0,max=1000000000"`
}

// SetAutoFishingRequest toggles scheduled fishing for a user
type SetAutoFishingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GrantGoldResponse reports the balance after a grant
type GrantGoldResponse struct {
	Gold int64 `json:"gold"`
}

// AutoFishingSweeper runs an auto-fishing pass on demand
type AutoFishingSweeper interface {
	Sweep(ctx context.Context) (*worker.SweepSummary, error)
}

// AdminHandlers serves operator routes
type AdminHandlers struct {
	users   user.Service
	economy economy.Service
	tech    technology.Service
	sweeper AutoFishingSweeper
}

func NewAdminHandlers(users user.Service, econ economy.Service, tech technology.Service, sweeper AutoFishingSweeper) *AdminHandlers {
	return &AdminHandlers{users: users, economy: econ, tech: tech, sweeper: sweeper}
}

// @Summary Grant gold
// @Description Add gold to a user's balance
// @Tags admin
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body GrantGoldRequest true "Amount to grant"
// @Success 200 {object} GrantGoldResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/admin/users/{platform}/{platformID}/gold [post]
func (h *AdminHandlers) HandleGrantGold(w http.ResponseWriter, r *http.Request) {
	var req GrantGoldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant gold"); err != nil {
		return
	}
	gold, err := h.economy.GrantGold(r.Context(), userID(r), req.Amount)
	if err != nil {
		respondServiceError(w, r, "Grant gold", err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgGoldGranted, "user_id", userID(r), "amount", req.Amount)
	respondJSON(w, http.StatusOK, GrantGoldResponse{Gold: gold})
}

// @Summary Toggle auto-fishing
// @Tags admin
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body SetAutoFishingRequest true "Auto-fishing flag"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/admin/users/{platform}/{platformID}/auto-fishing [put]
func (h *AdminHandlers) HandleSetAutoFishing(w http.ResponseWriter, r *http.Request) {
	var req SetAutoFishingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set auto-fishing"); err != nil {
		return
	}
	if err := h.users.SetAutoFishing(r.Context(), userID(r), *req.Enabled); err != nil {
		respondServiceError(w, r, "Set auto-fishing", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAutoFishingSet})
}

// HandleTechnologySweep unlocks every technology the user now qualifies for
// @Summary Sweep technology unlocks
// @Description Unlock every technology whose level and prerequisites are met
// @Tags admin
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {array} domain.Technology
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/admin/users/{platform}/{platformID}/tech/sweep [post]
func (h *AdminHandlers) HandleTechnologySweep(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.tech.SweepAutoUnlocks(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "Technology sweep", err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgAdminSweep, "user_id", userID(r), "unlocked", len(unlocked))
	respondJSON(w, http.StatusOK, unlocked)
}

// HandleAutoFishingSweep runs an auto-fishing pass now instead of waiting for the schedule
// @Summary Run auto-fishing now
// @Tags admin
// @Produce json
// @Success 200 {object} worker.SweepSummary
// @Failure 409 {object} ErrorResponse "Sweep already running"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/admin/auto-fishing/sweep [post]
func (h *AdminHandlers) HandleAutoFishingSweep(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sweeper.Sweep(r.Context())
	if errors.Is(err, worker.ErrSweepInProgress) {
		respondError(w, http.StatusConflict, MsgSweepInProgress)
		return
	}
	if err != nil {
		respondServiceError(w, r, "Auto-fishing sweep", err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgAdminAutoFishing, "users", summary.Users)
	respondJSON(w, http.StatusOK, summary)
}

// @Summary User cache statistics
// @Tags admin
// @Produce json
// @Success 200 {object} user.CacheStats
// @Security ApiKeyAuth
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminHandlers) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.users.GetCacheStats())
}
