// Package main wires the spinbot service: Twitch chat triggers feed the
// slot machine engine, results fan out over the event bus to the SSE
// overlay, Prometheus metrics and Streamer.bot celebrations, and the HTTP
// server exposes the overlay API.
//
// @title spinbot API
// @version 1.0
// @description Twitch chat slot machine overlay service
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habbi3/spinbot/internal/bootstrap"
	"github.com/habbi3/spinbot/internal/config"
	"github.com/habbi3/spinbot/internal/engine"
	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/server"
	"github.com/habbi3/spinbot/internal/session"
	"github.com/habbi3/spinbot/internal/slots"
	"github.com/habbi3/spinbot/internal/sse"
	"github.com/habbi3/spinbot/internal/streamerbot"
	"github.com/habbi3/spinbot/internal/twitch"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := bootstrap.InitializeStore(ctx, cfg)

	bus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	// Core game stack
	sess := session.New(engine.New(), cfg.SpinCooldown)
	lb := leaderboard.NewService(ctx, st)
	slotsService := slots.NewService(sess, lb, publisher, cfg.TwitchRewardID)

	// Outbound integrations
	hub := sse.NewHub()
	hub.Start()

	sbClient := streamerbot.NewClient(cfg.StreamerbotURL, cfg.StreamerbotPassword)
	sbClient.Start(ctx)

	// Subscribers attach to the raw bus; publishes go through the
	// resilient wrapper.
	bootstrap.RegisterEventHandlers(bus, hub, sbClient)

	// Chat trigger source
	twitchClient := twitch.NewClient(cfg.TwitchIRCURL, cfg.TwitchChannel, slotsService.HandleTrigger)
	twitchClient.Start(ctx)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, st, slotsService, lb, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		TwitchClient:       twitchClient,
		StreamerbotClient:  sbClient,
		Hub:                hub,
		SlotsService:       slotsService,
		ResilientPublisher: publisher,
		Store:              st,
	})
}
