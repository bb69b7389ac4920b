package engine

import "github.com/habbi3/spinbot/internal/domain"

// Symbol names
const (
	SymbolCherry  = "cherry"
	SymbolLemon   = "lemon"
	SymbolBell    = "bell"
	SymbolSeven   = "seven"
	SymbolWild    = "wild"
	SymbolDiamond = "diamond"
)

// Catalog is the fixed process-wide symbol set. Weights are relative
// sampling frequencies; the diamond doubles as the bonus symbol and the
// seven is the designated high-value plain symbol.
var Catalog = []domain.Symbol{
	{Name: SymbolCherry, Glyph: "🍒", Weight: 25},
	{Name: SymbolLemon, Glyph: "🍋", Weight: 25},
	{Name: SymbolBell, Glyph: "🔔", Weight: 20},
	{Name: SymbolSeven, Glyph: "7️⃣", Weight: 15},
	{Name: SymbolWild, Glyph: "⭐", Weight: 10, IsWild: true},
	{Name: SymbolDiamond, Glyph: "💎", Weight: 5, IsBonus: true},
}

// Base token payouts per tier
const (
	PayoutMegaJackpot  = 500 // 3 diamonds
	PayoutSuperJackpot = 250 // 3 sevens
	PayoutWildJackpot  = 150 // 3 wilds
	PayoutJackpot      = 100 // any 3 matching via the wild rule
	PayoutDoubleWild   = 25  // exactly 2 wilds, no higher tier
	PayoutTwoMatch     = 10  // 2 adjacent reels match
	PayoutBonusSymbol  = 5   // any diamond present
	PayoutLuckySeven   = 3   // any seven present
	PayoutConsolation  = 1   // every spin pays at least this
)

// Bonus boost applied when a jackpot combination contains a diamond but is
// not itself the all-diamond jackpot: base payout × 3/2, floored.
const (
	BonusBoostNum = 3
	BonusBoostDen = 2
)

// Multiplier is one entry of the weighted multiplier table.
type Multiplier struct {
	Value  int
	Weight int
	Label  string
}

// Multipliers is the weighted multiplier table. The no-multiplier entry
// must carry the majority weight; losing spins never draw from this table.
var Multipliers = []Multiplier{
	{Value: 1, Weight: 60, Label: ""},
	{Value: 2, Weight: 20, Label: "2x!"},
	{Value: 3, Weight: 10, Label: "3x!"},
	{Value: 5, Weight: 6, Label: "5x!!"},
	{Value: 10, Weight: 3, Label: "10x!!!"},
	{Value: 25, Weight: 1, Label: "🔥 25x MEGA!"},
}

// Win-type labels shown on the overlay
const (
	LabelMegaJackpot  = "💎💎💎 MEGA JACKPOT!!!"
	LabelSuperJackpot = "7️⃣7️⃣7️⃣ SUPER JACKPOT!!"
	LabelWildJackpot  = "⭐⭐⭐ WILD JACKPOT!"
	LabelJackpot      = "🎰 JACKPOT!"
	LabelDoubleWild   = "⭐⭐ Double Wilds!"
	LabelTwoMatch     = "✨ Two of a kind!"
	LabelBonusSymbol  = "💎 Diamond bonus!"
	LabelLuckySeven   = "7️⃣ Lucky seven!"
	LabelConsolation  = "Better luck next time!"
	LabelBonusSuffix  = " +💎 Bonus!"
)
