package streamerbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/event"
)

// ActionSender is the subset of Client the subscriber needs.
type ActionSender interface {
	DoAction(actionName string, args map[string]string) error
}

// Subscriber bridges internal events to Streamer.bot DoAction commands
type Subscriber struct {
	client ActionSender
	bus    event.Bus
}

// NewSubscriber creates a new Streamer.bot event subscriber
func NewSubscriber(client ActionSender, bus event.Bus) *Subscriber {
	return &Subscriber{
		client: client,
		bus:    bus,
	}
}

// Subscribe registers handlers for relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SpinSettled, s.handleSpinSettled)

	slog.Info("Streamer.bot subscriber registered for event types",
		"types", []string{string(event.SpinSettled)})
}

// handleSpinSettled sends the celebration action matching the outcome
// category, plus a multiplier action when one landed.
func (s *Subscriber) handleSpinSettled(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.SpinSettledPayloadV1)
	if !ok {
		slog.Warn("Invalid spin settled event payload type")
		return nil
	}

	result := payload.Result
	args := map[string]string{
		"username":   result.Player.Username,
		"win_type":   result.WinType,
		"tier":       string(result.Tier),
		"tokens":     fmt.Sprintf("%d", result.Tokens),
		"multiplier": fmt.Sprintf("%d", result.Multiplier),
	}

	slog.Debug(LogMsgEventReceived, "event_type", evt.Type, "args", args)

	action := ActionForResult(result)
	if err := s.client.DoAction(action, args); err != nil {
		// Use Debug level - Streamer.bot being unavailable is expected
		slog.Debug("Failed to send celebration to Streamer.bot", "error", err)
		return nil
	}

	if result.Multiplier > 1 {
		if err := s.client.DoAction(ActionMultiplier, args); err != nil {
			slog.Debug("Failed to send multiplier action to Streamer.bot", "error", err)
		}
	}

	return nil
}

// ActionForResult maps an outcome category to its Streamer.bot action.
func ActionForResult(result domain.SpinResult) string {
	switch {
	case result.IsJackpot:
		return ActionJackpot
	case result.IsSmallWin:
		return ActionSmallWin
	default:
		return ActionConsolation
	}
}
