package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleHealthz(t *testing.T) {
	rec := doJSON(t, HandleHealthz(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadyz(t *testing.T) {
	up := new(MockPinger)
	up.On("Ping", mock.Anything).Return(nil)
	rec := doJSON(t, HandleReadyz(up), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	down := new(MockPinger)
	down.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	rec = doJSON(t, HandleReadyz(down), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgDatabaseDown)
}
