package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/habbi3/spinbot/internal/engine"
	"github.com/habbi3/spinbot/internal/event"
	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/session"
	"github.com/habbi3/spinbot/internal/slots"
	"github.com/habbi3/spinbot/internal/sse"
	"github.com/habbi3/spinbot/internal/store"
)

// newTestServer wires the full stack on in-memory dependencies.
func newTestServer(t *testing.T, apiKey string) http.Handler {
	t.Helper()

	st := store.NewMemory()
	lb := leaderboard.NewService(context.Background(), st)
	sess := session.New(engine.New(), time.Second)
	bus := event.NewMemoryBus()
	svc := slots.NewService(sess, lb, bus, "")

	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	srv := NewServer(0, apiKey, nil, st, svc, lb, hub)
	return srv.httpServer.Handler
}

func TestServerRoutes(t *testing.T) {
	h := newTestServer(t, "secret")

	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{"healthz", "GET", "/healthz", "", http.StatusOK},
		{"readyz", "GET", "/readyz", "", http.StatusOK},
		{"version", "GET", "/version", "", http.StatusOK},
		{"metrics", "GET", "/metrics", "", http.StatusOK},
		{"current spin", "GET", "/api/v1/spin/current", "", http.StatusOK},
		{"leaderboard", "GET", "/api/v1/leaderboard", "", http.StatusOK},
		{"leaderboard stats", "GET", "/api/v1/leaderboard/stats", "", http.StatusOK},
		{"jackpots", "GET", "/api/v1/jackpots", "", http.StatusOK},
		{"mute", "GET", "/api/v1/mute", "", http.StatusOK},
		{"admin reset without key", "POST", "/api/v1/admin/reset", "", http.StatusUnauthorized},
		{"admin reset with key", "POST", "/api/v1/admin/reset", "secret", http.StatusOK},
		{"admin reset jackpots with key", "POST", "/api/v1/admin/reset-jackpots", "secret", http.StatusOK},
		{"unknown route", "GET", "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServerSecurityHeadersApplied(t *testing.T) {
	h := newTestServer(t, "secret")

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
}
