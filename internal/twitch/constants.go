package twitch

import "time"

// Default configuration values
const (
	// DefaultIRCURL is the Twitch IRC-over-WebSocket endpoint
	DefaultIRCURL = "wss://irc-ws.chat.twitch.tv:443"

	// AnonymousNickPrefix is the nick prefix for read-only anonymous logins
	AnonymousNickPrefix = "justinfan"

	// Capabilities requested on connect; tags carry display-name, color,
	// badges and custom-reward-id, commands carries RECONNECT
	Capabilities = "twitch.tv/tags twitch.tv/commands"

	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay is the maximum delay between reconnection attempts
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// WriteTimeout is the timeout for writing messages
	WriteTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// IRC commands
const (
	CmdPing      = "PING"
	CmdPong      = "PONG"
	CmdPrivMsg   = "PRIVMSG"
	CmdReconnect = "RECONNECT"
	CmdNotice    = "NOTICE"
)

// Message tags
const (
	TagDisplayName    = "display-name"
	TagColor          = "color"
	TagBadges         = "badges"
	TagMod            = "mod"
	TagCustomRewardID = "custom-reward-id"
)

// Badge names
const (
	BadgeBroadcaster = "broadcaster"
	BadgeModerator   = "moderator"
)

// DefaultColor is used when a chatter has never set a name color.
const DefaultColor = "#FFFFFF"

// CommandPrefix marks a chat message as a command.
const CommandPrefix = "!"

// Log messages
const (
	LogMsgConnecting    = "Connecting to Twitch IRC"
	LogMsgConnected     = "Connected to Twitch IRC"
	LogMsgJoined        = "Joined Twitch channel"
	LogMsgReconnecting  = "Reconnecting to Twitch IRC"
	LogMsgReadError     = "Error reading from Twitch IRC"
	LogMsgWriteError    = "Error writing to Twitch IRC"
	LogMsgClientStopped = "Twitch IRC client stopped"
	LogMsgServerRestart = "Twitch IRC requested reconnect"
)
