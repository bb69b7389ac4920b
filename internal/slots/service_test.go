package slots

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/event"
	"github.com/habbi3/spinbot/internal/session"
)

// stubEngine returns a canned result per spin.
type stubEngine struct {
	result domain.SpinResult
}

func (e *stubEngine) Spin(player domain.Player) *domain.SpinResult {
	r := e.result
	r.Player = player
	return &r
}

// mockLeaderboard is a hand-written mock tracking calls.
type mockLeaderboard struct {
	mu            sync.Mutex
	recorded      []*domain.SpinResult
	resets        int
	jackpotResets int
	resetErr      error
}

func (m *mockLeaderboard) RecordSpin(_ context.Context, result *domain.SpinResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, result)
}

func (m *mockLeaderboard) TopPlayers(context.Context, int) []domain.PlayerStats {
	return nil
}

func (m *mockLeaderboard) PlayerStats(context.Context, string) (domain.PlayerStats, bool) {
	return domain.PlayerStats{}, false
}

func (m *mockLeaderboard) Totals(context.Context) domain.LeaderboardTotals {
	return domain.LeaderboardTotals{}
}

func (m *mockLeaderboard) JackpotLedger(context.Context) []domain.JackpotEntry {
	return nil
}

func (m *mockLeaderboard) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	return m.resetErr
}

func (m *mockLeaderboard) ResetJackpots(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jackpotResets++
	return m.resetErr
}

func (m *mockLeaderboard) recordedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recorded)
}

// eventRecorder collects published event types.
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) record() event.Handler {
	return func(_ context.Context, evt event.Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, evt)
		return nil
	}
}

func (r *eventRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Type)
	}
	return out
}

func (r *eventRecorder) count(t event.Type) int {
	n := 0
	for _, got := range r.types() {
		if got == t {
			n++
		}
	}
	return n
}

type fixture struct {
	svc      Service
	lb       *mockLeaderboard
	recorder *eventRecorder
}

func newFixture(t *testing.T, result domain.SpinResult, rewardID string) *fixture {
	t.Helper()

	bus := event.NewMemoryBus()
	recorder := &eventRecorder{}
	for _, typ := range []event.Type{
		event.SpinStarted, event.SpinSettled,
		event.LeaderboardUpdated, event.JackpotLedgerUpdated, event.LeaderboardToggled,
	} {
		bus.Subscribe(typ, recorder.record())
	}

	lb := &mockLeaderboard{}
	sess := session.New(&stubEngine{result: result}, 50*time.Millisecond)

	return &fixture{
		svc:      NewService(sess, lb, bus, rewardID),
		lb:       lb,
		recorder: recorder,
	}
}

func spinTrigger(username string) domain.TriggerEvent {
	return domain.TriggerEvent{
		Kind:     domain.TriggerCommand,
		Command:  CommandSpin,
		Username: username,
		Color:    "#FF0000",
	}
}

func smallWin() domain.SpinResult {
	return domain.SpinResult{
		Tier:       domain.TierTwoMatch,
		WinType:    "TWO_MATCH",
		IsSmallWin: true,
		Tokens:     10,
		Multiplier: 1,
	}
}

func jackpotWin() domain.SpinResult {
	return domain.SpinResult{
		Tier:       domain.TierJackpot,
		WinType:    "JACKPOT",
		IsJackpot:  true,
		Tokens:     100,
		Multiplier: 1,
	}
}

func TestSpinCommandStartsSpin(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("viewer"))

	assert.Equal(t, 1, f.recorder.count(event.SpinStarted))

	result, spinning, _ := f.svc.Current(ctx)
	require.NotNil(t, result)
	assert.True(t, spinning)
	assert.Equal(t, "viewer", result.Player.Username)
}

func TestMalformedTriggerDropped(t *testing.T) {
	f := newFixture(t, smallWin(), "")

	f.svc.HandleTrigger(context.Background(), spinTrigger(""))

	assert.Zero(t, f.recorder.count(event.SpinStarted))
	_, spinning, _ := f.svc.Current(context.Background())
	assert.False(t, spinning)
}

func TestSpinRejectedWhileInFlight(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("first"))
	f.svc.HandleTrigger(ctx, spinTrigger("second"))

	assert.Equal(t, 1, f.recorder.count(event.SpinStarted))
	result, _, _ := f.svc.Current(ctx)
	assert.Equal(t, "first", result.Player.Username)
}

func TestSpinRejectedDuringCooldown(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("first"))
	_, settled := f.svc.CompleteSpin(ctx, 0)
	require.True(t, settled)

	// Cooldown (50ms) has not elapsed
	f.svc.HandleTrigger(ctx, spinTrigger("second"))
	assert.Equal(t, 1, f.recorder.count(event.SpinStarted))
}

func TestCompleteSpinSettlesOnce(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("viewer"))

	result, settled := f.svc.CompleteSpin(ctx, 0)
	require.True(t, settled)
	require.NotNil(t, result)

	_, settledAgain := f.svc.CompleteSpin(ctx, 0)
	assert.False(t, settledAgain)
	_, settledByID := f.svc.CompleteSpin(ctx, result.SpinID)
	assert.False(t, settledByID)

	require.NoError(t, f.svc.Shutdown(ctx))
	assert.Equal(t, 1, f.lb.recordedCount(), "leaderboard records exactly once")
	assert.Equal(t, 1, f.recorder.count(event.SpinSettled))
	assert.Equal(t, 1, f.recorder.count(event.LeaderboardUpdated))
}

func TestCompleteSpinWithoutSpin(t *testing.T) {
	f := newFixture(t, smallWin(), "")

	_, settled := f.svc.CompleteSpin(context.Background(), 0)
	assert.False(t, settled)
	assert.Zero(t, f.lb.recordedCount())
}

func TestJackpotPublishesLedger(t *testing.T) {
	f := newFixture(t, jackpotWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("winner"))
	_, settled := f.svc.CompleteSpin(ctx, 0)
	require.True(t, settled)

	require.NoError(t, f.svc.Shutdown(ctx))
	assert.Equal(t, 1, f.recorder.count(event.JackpotLedgerUpdated))
}

func TestSmallWinDoesNotPublishLedger(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("viewer"))
	_, settled := f.svc.CompleteSpin(ctx, 0)
	require.True(t, settled)

	require.NoError(t, f.svc.Shutdown(ctx))
	assert.Zero(t, f.recorder.count(event.JackpotLedgerUpdated))
}

func TestLeaderboardCommandsToggleOverlay(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	for _, cmd := range []string{CommandLeaderboard, CommandLB, CommandTop} {
		f.svc.HandleTrigger(ctx, domain.TriggerEvent{
			Kind:     domain.TriggerCommand,
			Command:  cmd,
			Username: "viewer",
		})
	}

	assert.Equal(t, 3, f.recorder.count(event.LeaderboardToggled))
}

func TestResetRequiresBroadcaster(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:     domain.TriggerCommand,
		Command:  CommandResetSlots,
		Username: "viewer",
		IsMod:    true,
	})
	assert.Zero(t, f.lb.resets, "mod without broadcaster badge cannot reset")

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:          domain.TriggerCommand,
		Command:       CommandResetSlots,
		Username:      "streamer",
		IsBroadcaster: true,
	})
	assert.Equal(t, 1, f.lb.resets)
	assert.Equal(t, 1, f.recorder.count(event.LeaderboardUpdated))
}

func TestResetJackpotsRequiresBroadcaster(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:     domain.TriggerCommand,
		Command:  CommandResetJackpots,
		Username: "viewer",
	})
	assert.Zero(t, f.lb.jackpotResets)

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:          domain.TriggerCommand,
		Command:       CommandResetJackpots,
		Username:      "streamer",
		IsBroadcaster: true,
	})
	assert.Equal(t, 1, f.lb.jackpotResets)
	assert.Equal(t, 1, f.recorder.count(event.JackpotLedgerUpdated))
}

func TestRedemptionMatchingReward(t *testing.T) {
	f := newFixture(t, smallWin(), "reward-123")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:     domain.TriggerRedemption,
		Username: "spender",
		RewardID: "reward-123",
	})
	assert.Equal(t, 1, f.recorder.count(event.SpinStarted))
}

func TestRedemptionUnrelatedRewardIgnored(t *testing.T) {
	f := newFixture(t, smallWin(), "reward-123")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:     domain.TriggerRedemption,
		Username: "spender",
		RewardID: "other-reward",
	})
	assert.Zero(t, f.recorder.count(event.SpinStarted))
}

func TestRedemptionDisabledWithoutRewardID(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, domain.TriggerEvent{
		Kind:     domain.TriggerRedemption,
		Username: "spender",
		RewardID: "reward-123",
	})
	assert.Zero(t, f.recorder.count(event.SpinStarted))
}

func TestUnknownCommandIgnored(t *testing.T) {
	f := newFixture(t, smallWin(), "")

	f.svc.HandleTrigger(context.Background(), domain.TriggerEvent{
		Kind:     domain.TriggerCommand,
		Command:  "dance",
		Username: "viewer",
	})

	assert.Empty(t, f.recorder.types())
}

func TestTestSpin(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	result, err := f.svc.TestSpin(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, "tester", result.Player.Username)
	assert.Equal(t, TestPlayerColor, result.Player.Color)
	assert.Equal(t, 1, f.recorder.count(event.SpinStarted))

	// Test spins obey the in-flight rule like any other spin
	_, err = f.svc.TestSpin(ctx, "tester")
	assert.Error(t, err)
}

func TestShutdownDrainsSettlement(t *testing.T) {
	f := newFixture(t, smallWin(), "")
	ctx := context.Background()

	f.svc.HandleTrigger(ctx, spinTrigger("viewer"))
	_, settled := f.svc.CompleteSpin(ctx, 0)
	require.True(t, settled)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, f.svc.Shutdown(shutdownCtx))
	assert.Equal(t, 1, f.lb.recordedCount())
}
