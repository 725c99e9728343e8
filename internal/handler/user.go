package handler

import (
	"net/http"

	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/user"
)

// RegisterUserRequest identifies a chat user by platform
type RegisterUserRequest struct {
	Platform   string `json:"platform" validate:"required,platform"`
	PlatformID string `json:"platform_id" validate:"required,max=64"`
	Username   string `json:"username" validate:"required,max=64"`
}

// RegisterUserResponse wraps the user with whether it was just created
type RegisterUserResponse struct {
	User    interface{} `json:"user"`
	Created bool        `json:"created"`
}

// SetTitleRequest selects the displayed title; 0 clears it
type SetTitleRequest struct {
	TitleID int `json:"title_id" validate:"min=0"`
}

// UserHandlers serves registration, profile and title routes
type UserHandlers struct {
	users user.Service
}

func NewUserHandlers(users user.Service) *UserHandlers {
	return &UserHandlers{users: users}
}

// HandleRegister creates the user on first contact and returns the existing one afterwards
// @Summary Register a user
// @Description Create the user on first contact; returns the existing user afterwards
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Platform identity"
// @Success 201 {object} RegisterUserResponse "Created"
// @Success 200 {object} RegisterUserResponse "Already registered"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users [post]
func (h *UserHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
		return
	}

	u, created, err := h.users.Register(r.Context(), req.Platform, req.PlatformID, req.Username)
	if err != nil {
		respondServiceError(w, r, "Register user", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		logger.FromContext(r.Context()).Info(LogMsgUserRegistered, "user_id", u.ID, "platform", u.Platform)
	}
	respondJSON(w, status, RegisterUserResponse{User: u, Created: created})
}

// @Summary Get profile
// @Tags users
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID} [get]
func (h *UserHandlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Profile(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// @Summary Get inventory
// @Tags users
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {object} domain.Inventory
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/inventory [get]
func (h *UserHandlers) HandleInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := h.users.Inventory(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "Get inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// @Summary List owned titles
// @Tags users
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Success 200 {array} domain.Title
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/titles [get]
func (h *UserHandlers) HandleTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.users.Titles(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, r, "List titles", err)
		return
	}
	respondJSON(w, http.StatusOK, titles)
}

// @Summary Select displayed title
// @Description title_id 0 clears the title
// @Tags users
// @Accept json
// @Produce json
// @Param platform path string true "Chat platform (discord, twitch, youtube)"
// @Param platformID path string true "Platform user ID"
// @Param request body SetTitleRequest true "Title to display"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Title not owned"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{platform}/{platformID}/titles/current [put]
func (h *UserHandlers) HandleSetTitle(w http.ResponseWriter, r *http.Request) {
	var req SetTitleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set title"); err != nil {
		return
	}
	if err := h.users.SetTitle(r.Context(), userID(r), req.TitleID); err != nil {
		respondServiceError(w, r, "Set title", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTitleSet})
}
