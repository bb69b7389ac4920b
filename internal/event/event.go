package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/habbi3/spinbot/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types published by the spin pipeline
const (
	SpinStarted          Type = "spin.started"
	SpinSettled          Type = "spin.settled"
	LeaderboardUpdated   Type = "leaderboard.updated"
	JackpotLedgerUpdated Type = "jackpot.ledger_updated"
	LeaderboardToggled   Type = "leaderboard.toggled"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// SpinStartedPayloadV1 announces a new spin to the overlay.
type SpinStartedPayloadV1 struct {
	SpinID    uint64        `json:"spin_id"`
	Player    domain.Player `json:"player"`
	Timestamp int64         `json:"timestamp"`
}

// SpinSettledPayloadV1 carries the settled outcome.
type SpinSettledPayloadV1 struct {
	Result    domain.SpinResult `json:"result"`
	Timestamp int64             `json:"timestamp"`
}

// LeaderboardUpdatedPayloadV1 carries the refreshed top-N view.
type LeaderboardUpdatedPayloadV1 struct {
	Top    []domain.PlayerStats     `json:"top"`
	Totals domain.LeaderboardTotals `json:"totals"`
}

// JackpotLedgerPayloadV1 carries the full bounded ledger.
type JackpotLedgerPayloadV1 struct {
	Entries []domain.JackpotEntry `json:"entries"`
}

// Type-safe event constructors

// NewSpinStartedEvent creates a spin started event.
func NewSpinStartedEvent(spinID uint64, player domain.Player) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinStarted,
		Payload: SpinStartedPayloadV1{
			SpinID:    spinID,
			Player:    player,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSpinSettledEvent creates a spin settled event.
func NewSpinSettledEvent(result domain.SpinResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinSettled,
		Payload: SpinSettledPayloadV1{
			Result:    result,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLeaderboardUpdatedEvent creates a leaderboard updated event.
func NewLeaderboardUpdatedEvent(top []domain.PlayerStats, totals domain.LeaderboardTotals) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LeaderboardUpdated,
		Payload: LeaderboardUpdatedPayloadV1{Top: top, Totals: totals},
	}
}

// NewJackpotLedgerEvent creates a jackpot ledger updated event.
func NewJackpotLedgerEvent(entries []domain.JackpotEntry) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JackpotLedgerUpdated,
		Payload: JackpotLedgerPayloadV1{Entries: entries},
	}
}

// NewLeaderboardToggledEvent creates a leaderboard visibility toggle event.
func NewLeaderboardToggledEvent() Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LeaderboardToggled,
		Payload: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run
// synchronously, one event at a time.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
