package bootstrap

import (
	"log/slog"

	"github.com/habbi3/spinbot/internal/event"
	"github.com/habbi3/spinbot/internal/metrics"
	"github.com/habbi3/spinbot/internal/sse"
	"github.com/habbi3/spinbot/internal/streamerbot"
)

// RegisterEventHandlers attaches all bus subscribers: the Prometheus event
// collector, the SSE forwarder feeding the overlay, and the Streamer.bot
// celebration trigger. Must run before the first spin is published.
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub, actions streamerbot.ActionSender) {
	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, bus).Subscribe()
	slog.Info(LogMsgOverlayStreamRegistered)

	streamerbot.NewSubscriber(actions, bus).Subscribe()
	slog.Info(LogMsgCelebrationsRegistered)
}
