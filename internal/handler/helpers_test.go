package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/domain"
)

const (
	testUserID  = "user-1"
	testUserURL = "/users/discord/42"
)

// userRouter mounts fn under the resolved-user path the way the server does
func userRouter(users *MockUserService, method, pattern string, fn http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route("/users/{platform}/{platformID}", func(r chi.Router) {
		r.Use(ResolveUser(users))
		r.Method(method, pattern, fn)
	})
	return r
}

func knownUser() *MockUserService {
	m := new(MockUserService)
	m.On("Resolve", mock.Anything, domain.PlatformDiscord, "42").Return(&domain.User{ID: testUserID}, nil)
	return m
}

func doJSON(t *testing.T, h http.Handler, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
