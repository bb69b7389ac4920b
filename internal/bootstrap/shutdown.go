package bootstrap

import (
	"context"
	"log/slog"

	"github.com/habbi3/spinbot/internal/event"
	"github.com/habbi3/spinbot/internal/server"
	"github.com/habbi3/spinbot/internal/slots"
	"github.com/habbi3/spinbot/internal/sse"
	"github.com/habbi3/spinbot/internal/store"
	"github.com/habbi3/spinbot/internal/streamerbot"
	"github.com/habbi3/spinbot/internal/twitch"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	TwitchClient       *twitch.Client
	StreamerbotClient  *streamerbot.Client
	Hub                *sse.Hub
	SlotsService       slots.Service
	ResilientPublisher *event.ResilientPublisher
	Store              store.Store
}

// GracefulShutdown stops all application components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Chat client (stop producing new spins)
// 3. Slots service (drain in-flight settlements)
// 4. Event publisher (flush pending retries)
// 5. SSE hub and outbound clients
// 6. Store (final persistence flush already happened via settlements)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	components.TwitchClient.Stop()

	if err := components.SlotsService.Shutdown(ctx); err != nil {
		slog.Error(LogMsgSlotsShutdownFailed, "error", err)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	components.Hub.Stop()
	components.StreamerbotClient.Stop()

	if err := components.Store.Close(); err != nil {
		slog.Error(LogMsgStoreCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
