package sse

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// canceledRequest returns a request whose context is already done, so the
// handler emits the connect event and exits without blocking the test.
func canceledRequest(target string) *httptest.ResponseRecorder {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest("GET", target, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	Handler(hub)(w, req)
	return w
}

func TestHandlerConnectEvent(t *testing.T) {
	t.Run("unfiltered stream lists every event type", func(t *testing.T) {
		w := canceledRequest("/api/v1/events")

		body := w.Body.String()
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, body, "event: "+EventTypeConnected)
		for _, eventType := range []string{
			EventTypeSpinStarted,
			EventTypeSpinSettled,
			EventTypeLeaderboardUpdated,
			EventTypeJackpotLedger,
			EventTypeLeaderboardToggled,
		} {
			assert.Contains(t, body, eventType)
		}
	})

	t.Run("filtered stream echoes its filter", func(t *testing.T) {
		w := canceledRequest("/api/v1/events?types=" + EventTypeSpinSettled)

		body := w.Body.String()
		assert.Contains(t, body, "event: "+EventTypeConnected)
		assert.Contains(t, body, EventTypeSpinSettled)
		assert.NotContains(t, body, EventTypeJackpotLedger)
	})
}
