package store

// Logical key names for persisted blobs
const (
	// KeyLeaderboard holds the per-player stats collection.
	KeyLeaderboard = "leaderboard"

	// KeyJackpotLedger holds the bounded top-jackpot ledger.
	KeyJackpotLedger = "jackpot-ledger"

	// KeyMutePreference holds the overlay sound mute preference.
	KeyMutePreference = "mute-preference"
)

// Redis settings
const (
	// KeyPrefix namespaces all widget keys in a shared Redis instance.
	KeyPrefix = "spinbot:"

	// ChannelJackpotLedger is the pub/sub channel carrying jackpot ledger
	// updates to other running instances.
	ChannelJackpotLedger = "spinbot:jackpot-ledger"
)
