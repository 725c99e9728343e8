package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/user"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On failure the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, op string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "op", op, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "op", op)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// intParam parses a numeric path parameter, writing a 400 when it is malformed
func intParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || v <= 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, name))
		return 0, false
	}
	return v, true
}

// optionalIntQuery parses an optional non-negative integer query parameter
func optionalIntQuery(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, name))
		return 0, false
	}
	return v, true
}

type ctxKey int

const userIDKey ctxKey = iota

// ResolveUser looks up the player named by the {platform}/{platformID} path
// segment and stores their internal id on the request context.
func ResolveUser(users user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := users.Resolve(r.Context(), chi.URLParam(r, ParamPlatform), chi.URLParam(r, ParamPlatformID))
			if err != nil {
				respondServiceError(w, r, "resolve user", err)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID returns the id stored by ResolveUser
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
