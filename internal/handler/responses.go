package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "error", err)
	} else {
		log.Debug(LogMsgServiceRejected, "op", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

type errorStatus struct {
	err    error
	status int
}

// serviceErrors is checked in order; the first match wins
var serviceErrors = []errorStatus{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrInvalidPlatform, http.StatusBadRequest},

	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrTemplateNotFound, http.StatusNotFound},
	{domain.ErrInstanceNotFound, http.StatusNotFound},
	{domain.ErrPoolNotFound, http.StatusNotFound},
	{domain.ErrTechnologyNotFound, http.StatusNotFound},
	{domain.ErrListingNotFound, http.StatusNotFound},
	{domain.ErrTitleNotFound, http.StatusNotFound},
	{domain.ErrAchievementNotFound, http.StatusNotFound},

	{domain.ErrNotOwned, http.StatusForbidden},
	{domain.ErrTitleNotOwned, http.StatusForbidden},
	{domain.ErrTechnologyUnavailable, http.StatusForbidden},
	{domain.ErrLevelTooLow, http.StatusForbidden},

	{domain.ErrAlreadyUnlocked, http.StatusConflict},
	{domain.ErrAlreadySignedIn, http.StatusConflict},
	{domain.ErrUserAlreadyExists, http.StatusConflict},
	{domain.ErrAlreadyEquipped, http.StatusConflict},
	{domain.ErrItemListed, http.StatusConflict},

	{domain.ErrListingExpired, http.StatusGone},

	{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientBait, http.StatusUnprocessableEntity},
	{domain.ErrNotBuyable, http.StatusUnprocessableEntity},
	{domain.ErrMaxPondCapacity, http.StatusUnprocessableEntity},
	{domain.ErrNothingToSell, http.StatusUnprocessableEntity},
	{domain.ErrNoRodEquipped, http.StatusUnprocessableEntity},
	{domain.ErrPondFull, http.StatusUnprocessableEntity},
	{domain.ErrNotTradable, http.StatusUnprocessableEntity},
	{domain.ErrCannotBuyOwnListing, http.StatusUnprocessableEntity},
}

// mapServiceError maps domain errors to an HTTP status and a message safe to
// show the player. Details appended to a sentinel ("%w: detail") are kept;
// storage and wrapping context are not.
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var cooldown domain.ErrOnCooldown
	if errors.As(err, &cooldown) {
		return http.StatusTooManyRequests, cooldown.Error()
	}
	var missing domain.ErrMissingPrerequisites
	if errors.As(err, &missing) {
		return http.StatusForbidden, missing.Error()
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.status, userMessage(err, m.err)
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

func userMessage(err, sentinel error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, sentinel.Error()) {
		return msg
	}
	return sentinel.Error()
}
