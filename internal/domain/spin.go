package domain

import "time"

// Symbol is an immutable entry in the reel catalog. Weight is the relative
// sampling frequency; the glyph is display-only and never consulted by logic.
type Symbol struct {
	Name    string `json:"name"`
	Glyph   string `json:"glyph"`
	Weight  int    `json:"weight"`
	IsWild  bool   `json:"is_wild,omitempty"`
	IsBonus bool   `json:"is_bonus,omitempty"`
}

// Player identifies the chatter who triggered a spin.
type Player struct {
	Username string `json:"username"`
	Color    string `json:"color"`
}

// Tier classifies a spin outcome. Exactly one tier applies per spin,
// determined by strict precedence in the outcome engine.
type Tier string

const (
	TierMegaJackpot  Tier = "mega_jackpot"
	TierSuperJackpot Tier = "super_jackpot"
	TierWildJackpot  Tier = "wild_jackpot"
	TierJackpot      Tier = "jackpot"
	TierDoubleWild   Tier = "double_wild"
	TierTwoMatch     Tier = "two_match"
	TierBonusSymbol  Tier = "bonus_symbol"
	TierLuckySeven   Tier = "lucky_seven"
	TierConsolation  Tier = "consolation"
)

// IsJackpot reports whether the tier counts as a jackpot for leaderboard
// and celebration purposes.
func (t Tier) IsJackpot() bool {
	switch t {
	case TierMegaJackpot, TierSuperJackpot, TierWildJackpot, TierJackpot:
		return true
	}
	return false
}

// IsSmallWin reports whether the tier is a non-jackpot win.
func (t Tier) IsSmallWin() bool {
	switch t {
	case TierDoubleWild, TierTwoMatch, TierBonusSymbol, TierLuckySeven:
		return true
	}
	return false
}

// SpinResult is the outcome of a single spin. It is created once by the
// outcome engine, owned by the session until settlement, and immutable
// thereafter.
type SpinResult struct {
	SpinID          uint64    `json:"spin_id"`
	Reels           [3]Symbol `json:"reels"`
	Tier            Tier      `json:"tier"`
	WinType         string    `json:"win_type"`
	IsJackpot       bool      `json:"is_jackpot"`
	IsSmallWin      bool      `json:"is_small_win"`
	HasBonus        bool      `json:"has_bonus"`
	BaseTokens      int       `json:"base_tokens"`
	Multiplier      int       `json:"multiplier"`
	MultiplierLabel string    `json:"multiplier_label,omitempty"`
	Tokens          int       `json:"tokens"`
	Player          Player    `json:"player"`
}

// PlayerStats is the per-player leaderboard aggregate. Created on first
// recorded spin, updated additively, cleared only by an explicit reset.
type PlayerStats struct {
	Username   string    `json:"username"`
	Spins      int       `json:"spins"`
	Tokens     int       `json:"tokens"`
	Jackpots   int       `json:"jackpots"`
	LastPlayed time.Time `json:"last_played"`
}

// JackpotEntry is one row of the bounded, descending-sorted jackpot ledger.
type JackpotEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// LeaderboardTotals aggregates the whole leaderboard for overlay display.
type LeaderboardTotals struct {
	Players  int `json:"players"`
	Spins    int `json:"spins"`
	Tokens   int `json:"tokens"`
	Jackpots int `json:"jackpots"`
}
