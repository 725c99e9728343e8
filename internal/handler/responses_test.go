package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest, domain.ErrInvalidAmount.Error()},
		{"wrapped not found hides context", fmt.Errorf("failed to get user: %w", domain.ErrUserNotFound), http.StatusNotFound, domain.ErrMsgUserNotFound},
		{"detail kept", fmt.Errorf("%w: 480/480 fish, sell some first", domain.ErrPondFull), http.StatusUnprocessableEntity, domain.ErrMsgPondFull + ": 480/480 fish, sell some first"},
		{"cooldown", domain.ErrOnCooldown{Action: "fishing", Remaining: 90 * time.Second}, http.StatusTooManyRequests, "1m 30s remaining"},
		{"missing prerequisites", domain.ErrMissingPrerequisites{Missing: []string{"Bait Mastery"}}, http.StatusForbidden, "Bait Mastery"},
		{"feature gate", fmt.Errorf("%w: wipe_bomb", domain.ErrTechnologyUnavailable), http.StatusForbidden, "wipe_bomb"},
		{"already signed in", domain.ErrAlreadySignedIn, http.StatusConflict, domain.ErrMsgAlreadySignedIn},
		{"expired listing", domain.ErrListingExpired, http.StatusGone, domain.ErrMsgListingExpired},
		{"storage failure", errors.New("pq: connection refused"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, msg, tt.wantMsg)
		})
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	errs := FormatValidationError(errors.New("boom"))
	assert.Equal(t, "Invalid request format", errs["error"])
	assert.Nil(t, FormatValidationError(nil))
}
