package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeSpinStarted is sent when a spin begins so the overlay can animate
	EventTypeSpinStarted = "spin.started"

	// EventTypeSpinSettled is sent when a spin outcome is settled
	EventTypeSpinSettled = "spin.settled"

	// EventTypeLeaderboardUpdated is sent after a settled spin changes the leaderboard
	EventTypeLeaderboardUpdated = "leaderboard.updated"

	// EventTypeJackpotLedger is sent when the jackpot ledger changes
	EventTypeJackpotLedger = "jackpot.ledger"

	// EventTypeLeaderboardToggled is sent when chat requests the leaderboard panel
	EventTypeLeaderboardToggled = "leaderboard.toggled"

	// EventTypeConnected is the first event on every new stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
