package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FishBot_Go/internal/technology"
)

// TechnologyHandlers serves the technology tree routes
type TechnologyHandlers struct {
	tech technology.Service
}

func NewTechnologyHandlers(tech technology.Service) *TechnologyHandlers {
	return &TechnologyHandlers{tech: tech}
}

// HandleList returns every technology with the caller's unlock status
// @Summary List technologies
// @Tags technology
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {array} domain.TechStatus
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/tech [get]
func (h *TechnologyHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.tech.List(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "List technologies", err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// @Summary Unlock a technology
// @Tags technology
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param techKey path string true "Technology key"
// @Success 201 {object} domain.Technology
// @Failure 403 {object} ErrorResponse "Requirements not met"
// @Failure 404 {object} ErrorResponse "Technology not found"
// @Failure 409 {object} ErrorResponse "Already unlocked"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/tech/{techKey}/unlock [post]
func (h *TechnologyHandlers) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	tech, err := h.tech.Unlock(r.Context(), userID(r), chi.URLParam(r, ParamTechKey))
	if err != nil {
		respondServiceError(w, r, "Unlock technology", err)
		return
	}
	respondJSON(w, http.StatusCreated, tech)
}
