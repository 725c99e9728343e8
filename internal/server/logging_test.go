package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	buf := captureLogs(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")
	rec := httptest.NewRecorder()

	loggingMiddleware(okHandler()).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestLoggingMiddleware_KeepsCallerRequestID(t *testing.T) {
	captureLogs(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	loggingMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestLoggingMiddleware_SkipsHealthChecks(t *testing.T) {
	buf := captureLogs(t)

	rec := httptest.NewRecorder()
	loggingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Empty(t, buf.String())
	assert.Empty(t, rec.Header().Get(HeaderRequestID))
}
