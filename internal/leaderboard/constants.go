package leaderboard

// DefaultTopLimit is how many players TopPlayers returns when the caller
// does not specify a limit.
const DefaultTopLimit = 5

// MaxJackpotEntries bounds the jackpot ledger; it is re-sorted and
// truncated to this size on every jackpot-producing spin.
const MaxJackpotEntries = 5
