package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func TestHandleWager(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockWagerService)
		expectedStatus int
	}{
		{
			name: "win",
			body: WagerRequest{Stake: 100},
			setupMock: func(m *MockWagerService) {
				m.On("Wager", mock.Anything, testUserID, int64(100)).
					Return(&domain.WagerResult{Stake: 100, Multiplier: 2, Payout: 200, Net: 100}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "zero stake",
			body:           WagerRequest{},
			setupMock:      func(m *MockWagerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "locked",
			body: WagerRequest{Stake: 100},
			setupMock: func(m *MockWagerService) {
				m.On("Wager", mock.Anything, testUserID, int64(100)).
					Return(nil, fmt.Errorf("%w: wipe_bomb", domain.ErrTechnologyUnavailable))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "broke",
			body: WagerRequest{Stake: 100},
			setupMock: func(m *MockWagerService) {
				m.On("Wager", mock.Anything, testUserID, int64(100)).Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := knownUser()
			svc := new(MockWagerService)
			tt.setupMock(svc)

			rec := doJSON(t, userRouter(users, http.MethodPost, "/wager", HandleWager(svc)), http.MethodPost, testUserURL+"/wager", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
