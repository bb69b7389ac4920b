package slots

// Chat commands routed by the service
const (
	CommandSpin          = "spin"
	CommandSlots         = "slots"
	CommandLeaderboard   = "leaderboard"
	CommandLB            = "lb"
	CommandTop           = "top"
	CommandResetSlots    = "resetslots"
	CommandResetJackpots = "resetjackpots"
)

// TestPlayerColor is the name color used for synthetic test spins.
const TestPlayerColor = "#9146FF"

// Log messages
const (
	LogMsgTriggerDropped     = "Dropping malformed trigger"
	LogMsgUnknownCommand     = "Ignoring unknown command"
	LogMsgSpinRejected       = "Spin request rejected"
	LogMsgSpinStarted        = "Spin started"
	LogMsgSpinSettled        = "Spin settled"
	LogMsgResetDenied        = "Reset command from non-broadcaster ignored"
	LogMsgLeaderboardToggle  = "Leaderboard toggle requested"
	LogMsgRewardMismatch     = "Ignoring redemption for unrelated reward"
	LogMsgLeaderboardReset   = "Leaderboard reset"
	LogMsgJackpotLedgerReset = "Jackpot ledger reset"
)
