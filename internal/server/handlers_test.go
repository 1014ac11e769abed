package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{name: "GET request", method: http.MethodGet},
		{name: "POST request", method: http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", http.NoBody)
			rr := httptest.NewRecorder()

			HealthHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "Chat relay server is running!", rr.Body.String())
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
		})
	}
}

func TestWebSocketHandlerRejectsNonGet(t *testing.T) {
	h, _ := newTestHub()
	handler := WebSocketHandler(h, NewConfig())

	req := httptest.NewRequest(http.MethodPost, "/ws", http.NoBody)
	rr := httptest.NewRecorder()

	handler(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestWebSocketHandlerRejectsPlainHTTP(t *testing.T) {
	h, _ := newTestHub()
	cfg := NewConfig()
	cfg.AllowedOrigins = []string{"*"}
	handler := WebSocketHandler(h, cfg)

	// A GET without upgrade headers must fail the handshake, not hang.
	req := httptest.NewRequest(http.MethodGet, "/ws", http.NoBody)
	req.Header.Set("Origin", "http://localhost")
	rr := httptest.NewRecorder()

	handler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTestPageHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rr := httptest.NewRecorder()

	TestPageHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rr.Body.String(), "joinChat"))
}

func TestSetupRoutes(t *testing.T) {
	h, _ := newTestHub()
	mux := SetupRoutes(h, NewConfig())
	require.NotNil(t, mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
}
