package bootstrap

import (
	"context"
	"log/slog"

	"github.com/habbi3/spinbot/internal/config"
	"github.com/habbi3/spinbot/internal/store"
)

// InitializeStore connects to Redis when configured, falling back to the
// in-memory store when Redis is unset or unreachable. The overlay keeps
// working either way; only persistence across restarts is lost.
func InitializeStore(ctx context.Context, cfg *config.Config) store.Store {
	if cfg.RedisAddr != "" {
		st, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			slog.Info(LogMsgRedisConnected, "addr", cfg.RedisAddr)
			return st
		}
		slog.Warn(LogMsgRedisUnavailable, "addr", cfg.RedisAddr, "error", err)
	}

	slog.Info(LogMsgMemoryStoreFallback)
	return store.NewMemory()
}
