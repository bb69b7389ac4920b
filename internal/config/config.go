package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/habbi3/spinbot/internal/session"
	"github.com/habbi3/spinbot/internal/streamerbot"
	"github.com/habbi3/spinbot/internal/twitch"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	// TwitchChannel is the channel whose chat triggers spins.
	TwitchChannel string
	// TwitchIRCURL is the IRC-over-WebSocket endpoint.
	TwitchIRCURL string
	// TwitchRewardID gates channel-point spins; empty disables redemptions.
	TwitchRewardID string

	// StreamerbotURL is the local Streamer.bot WebSocket endpoint.
	StreamerbotURL string
	// StreamerbotPassword authenticates against Streamer.bot; empty skips auth.
	StreamerbotPassword string

	// RedisAddr enables Redis persistence; empty falls back to in-memory.
	RedisAddr     string
	RedisPassword string

	// SpinCooldown is the shared per-channel cooldown between spins.
	SpinCooldown time.Duration

	// APIKey guards the admin endpoints; empty disables them.
	APIKey string

	// TrustedProxies are proxy IPs whose X-Forwarded-For headers we trust.
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		Environment:         getEnv("ENVIRONMENT", "dev"),
		TwitchChannel:       getEnv("TWITCH_CHANNEL", ""),
		TwitchIRCURL:        getEnv("TWITCH_IRC_URL", twitch.DefaultIRCURL),
		TwitchRewardID:      getEnv("TWITCH_REWARD_ID", ""),
		StreamerbotURL:      getEnv("STREAMERBOT_URL", streamerbot.DefaultURL),
		StreamerbotPassword: getEnv("STREAMERBOT_PASSWORD", ""),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		APIKey:              getEnv("API_KEY", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cooldownStr := getEnv("SPIN_COOLDOWN_MS", "")
	if cooldownStr == "" {
		cfg.SpinCooldown = session.DefaultCooldown
	} else {
		ms, err := strconv.Atoi(cooldownStr)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid SPIN_COOLDOWN_MS value: %q", cooldownStr)
		}
		cfg.SpinCooldown = time.Duration(ms) * time.Millisecond
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	if cfg.TwitchChannel == "" {
		return nil, fmt.Errorf("TWITCH_CHANNEL environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
