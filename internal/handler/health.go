package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is satisfied by every repository backend
type Pinger interface {
	Ping(ctx context.Context) error
}

// readinessTimeout bounds the storage ping
const readinessTimeout = 2 * time.Second

// HandleHealthz is a liveness check
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: MsgHealthOK})
	}
}

// HandleReadyz reports ready only while storage answers
// @Summary Readiness check
// @Description Reports ready only while storage answers
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse "Storage unavailable"
// @Router /readyz [get]
func HandleReadyz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgReadinessFailed, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  MsgHealthUnavailable,
				Message: MsgDatabaseDown,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: MsgHealthOK})
	}
}
