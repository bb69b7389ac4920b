package metrics

import (
	"context"

	"github.com/habbi3/spinbot/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types we care about
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.SpinStarted,
		event.SpinSettled,
		event.LeaderboardUpdated,
		event.JackpotLedgerUpdated,
		event.LeaderboardToggled,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if evt.Type != event.SpinSettled {
		return nil
	}

	payload, ok := evt.Payload.(event.SpinSettledPayloadV1)
	if !ok {
		return nil
	}

	result := payload.Result
	SpinsTotal.WithLabelValues(string(result.Tier)).Inc()
	TokensAwarded.Add(float64(result.Tokens))
	if result.IsJackpot {
		JackpotsTotal.Inc()
	}

	return nil
}
