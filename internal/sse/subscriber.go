package sse

import (
	"context"
	"log/slog"

	"github.com/habbi3/spinbot/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SpinStarted, s.forward(EventTypeSpinStarted))
	s.bus.Subscribe(event.SpinSettled, s.forward(EventTypeSpinSettled))
	s.bus.Subscribe(event.LeaderboardUpdated, s.forward(EventTypeLeaderboardUpdated))
	s.bus.Subscribe(event.JackpotLedgerUpdated, s.forward(EventTypeJackpotLedger))
	s.bus.Subscribe(event.LeaderboardToggled, s.forward(EventTypeLeaderboardToggled))

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.SpinStarted),
			string(event.SpinSettled),
			string(event.LeaderboardUpdated),
			string(event.JackpotLedgerUpdated),
			string(event.LeaderboardToggled),
		})
}

// forward builds a handler that rebroadcasts the bus payload under the
// given SSE event type. Payloads are already overlay-shaped structs.
func (s *Subscriber) forward(sseType string) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		s.hub.Broadcast(sseType, evt.Payload)
		slog.Debug(LogMsgEventBroadcast, "event_type", sseType)
		return nil
	}
}
