package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/store"
)

func spinFor(username string, tokens int, jackpot bool) *domain.SpinResult {
	tier := domain.TierTwoMatch
	if jackpot {
		tier = domain.TierJackpot
	}
	return &domain.SpinResult{
		Tier:       tier,
		IsJackpot:  jackpot,
		BaseTokens: tokens,
		Multiplier: 1,
		Tokens:     tokens,
		Player:     domain.Player{Username: username},
	}
}

func TestRecordSpinAggregates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	svc.RecordSpin(ctx, spinFor("alice", 10, false))
	svc.RecordSpin(ctx, spinFor("alice", 100, true))

	stats, ok := svc.PlayerStats(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, 2, stats.Spins)
	assert.Equal(t, 110, stats.Tokens)
	assert.Equal(t, 1, stats.Jackpots)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestTopPlayersOrdering(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	svc.RecordSpin(ctx, spinFor("a", 50, false))
	svc.RecordSpin(ctx, spinFor("b", 10, false))
	svc.RecordSpin(ctx, spinFor("c", 80, false))

	top := svc.TopPlayers(ctx, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].Username)
	assert.Equal(t, 80, top[0].Tokens)
	assert.Equal(t, "a", top[1].Username)
	assert.Equal(t, 50, top[1].Tokens)
}

func TestTopPlayersStableTies(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	svc.RecordSpin(ctx, spinFor("first", 25, false))
	svc.RecordSpin(ctx, spinFor("second", 25, false))
	svc.RecordSpin(ctx, spinFor("third", 25, false))

	top := svc.TopPlayers(ctx, 0)
	require.Len(t, top, 3)
	assert.Equal(t, []string{top[0].Username, top[1].Username, top[2].Username},
		[]string{"first", "second", "third"}, "ties keep first-seen order")
}

func TestJackpotLedgerBounded(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	// Six jackpots with strictly increasing scores.
	for i := 1; i <= 6; i++ {
		svc.RecordSpin(ctx, spinFor("player", i*100, true))
	}

	ledger := svc.JackpotLedger(ctx)
	require.Len(t, ledger, MaxJackpotEntries)
	want := []int{600, 500, 400, 300, 200}
	for i, entry := range ledger {
		assert.Equal(t, want[i], entry.Score)
	}
}

func TestNonJackpotDoesNotTouchLedger(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	svc.RecordSpin(ctx, spinFor("a", 500, false))
	assert.Empty(t, svc.JackpotLedger(ctx))
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	svc := NewService(ctx, mem)
	svc.RecordSpin(ctx, spinFor("alice", 100, true))
	svc.RecordSpin(ctx, spinFor("bob", 30, false))

	// A fresh service over the same store sees the flushed state.
	reloaded := NewService(ctx, mem)
	stats, ok := reloaded.PlayerStats(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, 100, stats.Tokens)

	ledger := reloaded.JackpotLedger(ctx)
	require.Len(t, ledger, 1)
	assert.Equal(t, "alice", ledger[0].Username)
}

func TestLoadCorruptStateFallsBackEmpty(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.SetRaw(store.KeyLeaderboard, []byte("{corrupt"))
	mem.SetRaw(store.KeyJackpotLedger, []byte("also corrupt"))

	svc := NewService(ctx, mem)
	assert.Empty(t, svc.TopPlayers(ctx, 0))
	assert.Empty(t, svc.JackpotLedger(ctx))

	// The service keeps working after a bad load.
	svc.RecordSpin(ctx, spinFor("alice", 10, false))
	assert.Len(t, svc.TopPlayers(ctx, 0), 1)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := NewService(ctx, mem)

	svc.RecordSpin(ctx, spinFor("alice", 100, true))
	require.NoError(t, svc.Reset(ctx))

	assert.Empty(t, svc.TopPlayers(ctx, 0))
	assert.Equal(t, domain.LeaderboardTotals{}, svc.Totals(ctx))

	// Jackpot ledger survives a leaderboard reset.
	assert.Len(t, svc.JackpotLedger(ctx), 1)

	require.NoError(t, svc.ResetJackpots(ctx))
	assert.Empty(t, svc.JackpotLedger(ctx))

	// The empty state is what a fresh load sees.
	reloaded := NewService(ctx, mem)
	assert.Empty(t, reloaded.TopPlayers(ctx, 0))
	assert.Empty(t, reloaded.JackpotLedger(ctx))
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ctx, store.NewMemory())

	svc.RecordSpin(ctx, spinFor("a", 100, true))
	svc.RecordSpin(ctx, spinFor("a", 10, false))
	svc.RecordSpin(ctx, spinFor("b", 1, false))

	totals := svc.Totals(ctx)
	assert.Equal(t, domain.LeaderboardTotals{
		Players:  2,
		Spins:    3,
		Tokens:   111,
		Jackpots: 1,
	}, totals)
}

func TestLedgerPublishedOnJackpot(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	var published int
	mem.Subscribe(ctx, store.ChannelJackpotLedger, func([]byte) { published++ })

	svc := NewService(ctx, mem)
	svc.RecordSpin(ctx, spinFor("a", 10, false))
	assert.Equal(t, 0, published)

	svc.RecordSpin(ctx, spinFor("a", 500, true))
	assert.Equal(t, 1, published)
}

func TestRecordSpinUsesClock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewService(ctx, store.NewMemory()).(*service)
	svc.now = func() time.Time { return fixed }

	svc.RecordSpin(ctx, spinFor("alice", 1, false))
	stats, _ := svc.PlayerStats(ctx, "alice")
	assert.Equal(t, fixed, stats.LastPlayed)
}
