package engine

import (
	"math/rand"

	"github.com/habbi3/spinbot/internal/domain"
)

// Engine produces spin outcomes. It holds no mutable state beyond the
// random source; every call is a pure function of the weighted tables and
// the draws.
type Engine struct {
	catalog         []domain.Symbol
	totalWeight     int
	multipliers     []Multiplier
	multTotalWeight int
	rng             func(n int) int // returns [0, n); injectable for testing
}

// New creates an engine over the default catalog and multiplier table.
func New() *Engine {
	return NewWithRNG(func(n int) int {
		return rand.Intn(n) //nolint:gosec // game outcome randomness, not security critical
	})
}

// NewWithRNG creates an engine with a caller-supplied random source.
func NewWithRNG(rng func(n int) int) *Engine {
	e := &Engine{
		catalog:     Catalog,
		multipliers: Multipliers,
		rng:         rng,
	}
	for _, s := range e.catalog {
		e.totalWeight += s.Weight
	}
	for _, m := range e.multipliers {
		e.multTotalWeight += m.Weight
	}
	return e
}

// Spin draws three reels, classifies the combination and computes the
// payout. The returned result has SpinID zero; the session assigns it.
func (e *Engine) Spin(player domain.Player) *domain.SpinResult {
	reels := [3]domain.Symbol{e.drawSymbol(), e.drawSymbol(), e.drawSymbol()}
	return e.score(reels, player)
}

// drawSymbol performs weighted random selection via a cumulative walk over
// the catalog, so memory stays proportional to the catalog size.
func (e *Engine) drawSymbol() domain.Symbol {
	roll := e.rng(e.totalWeight)
	cumulative := 0
	for _, s := range e.catalog {
		cumulative += s.Weight
		if roll < cumulative {
			return s
		}
	}
	// Unreachable while weights are positive
	return e.catalog[len(e.catalog)-1]
}

// drawMultiplier selects a multiplier from the weighted table.
func (e *Engine) drawMultiplier() Multiplier {
	roll := e.rng(e.multTotalWeight)
	cumulative := 0
	for _, m := range e.multipliers {
		cumulative += m.Weight
		if roll < cumulative {
			return m
		}
	}
	return e.multipliers[0]
}

// symbolsMatch reports whether two reels match for tier classification.
// A wild matches anything; otherwise names must be equal.
func symbolsMatch(a, b domain.Symbol) bool {
	if a.IsWild || b.IsWild {
		return true
	}
	return a.Name == b.Name
}

// score classifies a reel combination and computes its payout. Tiers are
// checked in strict precedence order so exactly one fires per spin.
func (e *Engine) score(reels [3]domain.Symbol, player domain.Player) *domain.SpinResult {
	var wildCount, bonusCount, sevenCount int
	for _, r := range reels {
		if r.IsWild {
			wildCount++
		}
		if r.IsBonus {
			bonusCount++
		}
		if r.Name == SymbolSeven {
			sevenCount++
		}
	}

	m12 := symbolsMatch(reels[0], reels[1])
	m23 := symbolsMatch(reels[1], reels[2])
	m13 := symbolsMatch(reels[0], reels[2])
	allMatch := m12 && m23 && m13

	var tier domain.Tier
	var base int
	var label string

	switch {
	case bonusCount == 3:
		tier, base, label = domain.TierMegaJackpot, PayoutMegaJackpot, LabelMegaJackpot
	case sevenCount == 3:
		tier, base, label = domain.TierSuperJackpot, PayoutSuperJackpot, LabelSuperJackpot
	case wildCount == 3:
		tier, base, label = domain.TierWildJackpot, PayoutWildJackpot, LabelWildJackpot
	case allMatch:
		tier, base, label = domain.TierJackpot, PayoutJackpot, LabelJackpot
	case wildCount == 2:
		tier, base, label = domain.TierDoubleWild, PayoutDoubleWild, LabelDoubleWild
	case m12 || m23:
		tier, base, label = domain.TierTwoMatch, PayoutTwoMatch, LabelTwoMatch
	case bonusCount >= 1:
		tier, base, label = domain.TierBonusSymbol, PayoutBonusSymbol, LabelBonusSymbol
	case sevenCount >= 1:
		tier, base, label = domain.TierLuckySeven, PayoutLuckySeven, LabelLuckySeven
	default:
		tier, base, label = domain.TierConsolation, PayoutConsolation, LabelConsolation
	}

	// A diamond riding along in a jackpot combination (other than the
	// all-diamond jackpot itself, which already pays for them) boosts the
	// base payout before the multiplier is applied.
	hasBonus := bonusCount > 0 &&
		(tier == domain.TierSuperJackpot || tier == domain.TierJackpot)
	if hasBonus {
		base = base * BonusBoostNum / BonusBoostDen
		label += LabelBonusSuffix
	}

	// Consolation spins never receive a multiplier.
	mult := Multiplier{Value: 1}
	if base > PayoutConsolation {
		mult = e.drawMultiplier()
	}

	return &domain.SpinResult{
		Reels:           reels,
		Tier:            tier,
		WinType:         label,
		IsJackpot:       tier.IsJackpot(),
		IsSmallWin:      tier.IsSmallWin(),
		HasBonus:        hasBonus,
		BaseTokens:      base,
		Multiplier:      mult.Value,
		MultiplierLabel: mult.Label,
		Tokens:          base * mult.Value,
		Player:          player,
	}
}
