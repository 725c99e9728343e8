package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	mw := AuthMiddleware(apiKey, nil, NewActivityDetector())

	tests := []struct {
		name           string
		providedKey    string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, http.StatusOK},
		{"Invalid API Key", "wrong-key", http.StatusUnauthorized},
		{"Missing API Key", "", http.StatusUnauthorized},
		{"Prefix Of Key", "secret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			mw(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestActivityDetector_RateLimit(t *testing.T) {
	d := NewActivityDetector()
	d.maxRequests = 3
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }
	d.windowStart = clock

	for i := 0; i < 3; i++ {
		assert.True(t, d.RecordRequest("1.2.3.4"))
	}
	assert.False(t, d.RecordRequest("1.2.3.4"))
	assert.True(t, d.RecordRequest("5.6.7.8"), "budgets are per ip")

	clock = clock.Add(DefaultRateWindow + time.Second)
	assert.True(t, d.RecordRequest("1.2.3.4"), "new window resets the budget")
}

func TestRateLimitMiddleware(t *testing.T) {
	d := NewActivityDetector()
	d.maxRequests = 1
	h := RateLimitMiddleware(nil, d)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set(HeaderForwardedFor, "203.0.113.9, 198.51.100.7")

	assert.Equal(t, "10.0.0.1", extractIP(req, nil), "untrusted peer cannot spoof")
	assert.Equal(t, "198.51.100.7", extractIP(req, []string{"10.0.0.1"}))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueDeny, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		if _, err := r.Body.Read(buf); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", stringsReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
