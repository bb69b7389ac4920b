package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habbi3/spinbot/internal/domain"
)

// stubEngine returns a canned result per spin.
type stubEngine struct {
	spins int
}

func (e *stubEngine) Spin(player domain.Player) *domain.SpinResult {
	e.spins++
	return &domain.SpinResult{
		Tier:       domain.TierConsolation,
		BaseTokens: 1,
		Multiplier: 1,
		Tokens:     1,
		Player:     player,
	}
}

// newTestSession returns a session with a controllable clock.
func newTestSession(cooldown time.Duration) (*Session, *time.Time) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	s := New(&stubEngine{}, cooldown)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestRequestSpinAssignsMonotonicIDs(t *testing.T) {
	s, now := newTestSession(5 * time.Second)
	player := domain.Player{Username: "viewer"}

	for want := uint64(1); want <= 3; want++ {
		result, err := s.RequestSpin(player)
		require.NoError(t, err)
		assert.Equal(t, want, result.SpinID)

		_, settled := s.CompleteSpin(result.SpinID)
		require.True(t, settled)
		*now = now.Add(6 * time.Second)
	}
}

func TestRequestSpinRejectedWhileSpinning(t *testing.T) {
	s, _ := newTestSession(5 * time.Second)

	_, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)

	_, err = s.RequestSpin(domain.Player{Username: "b"})
	assert.ErrorIs(t, err, ErrSpinInFlight)
}

func TestRequestSpinCooldownGate(t *testing.T) {
	s, now := newTestSession(5 * time.Second)

	result, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)
	_, settled := s.CompleteSpin(result.SpinID)
	require.True(t, settled)

	// Immediately after a spin the cooldown always rejects.
	_, err = s.RequestSpin(domain.Player{Username: "b"})
	var onCooldown ErrOnCooldown
	require.True(t, errors.As(err, &onCooldown))
	assert.Equal(t, 5*time.Second, onCooldown.Remaining)

	// One millisecond before expiry still rejects.
	*now = now.Add(5*time.Second - time.Millisecond)
	_, err = s.RequestSpin(domain.Player{Username: "b"})
	assert.ErrorIs(t, err, ErrOnCooldown{})

	// At expiry the next request succeeds.
	*now = now.Add(time.Millisecond)
	_, err = s.RequestSpin(domain.Player{Username: "b"})
	assert.NoError(t, err)
}

func TestCooldownRemainingDerivedFromClock(t *testing.T) {
	s, now := newTestSession(5 * time.Second)

	assert.Equal(t, time.Duration(0), s.CooldownRemaining(), "fresh session has no cooldown")

	_, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)

	*now = now.Add(2 * time.Second)
	assert.Equal(t, 3*time.Second, s.CooldownRemaining())

	*now = now.Add(10 * time.Second)
	assert.Equal(t, time.Duration(0), s.CooldownRemaining())
}

func TestCompleteSpinIdempotent(t *testing.T) {
	s, _ := newTestSession(5 * time.Second)

	result, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)

	first, settled := s.CompleteSpin(result.SpinID)
	require.True(t, settled)
	assert.Equal(t, result.SpinID, first.SpinID)

	// Duplicate completion signals for the same spin are no-ops.
	for i := 0; i < 3; i++ {
		dup, settledAgain := s.CompleteSpin(result.SpinID)
		assert.False(t, settledAgain)
		assert.Nil(t, dup)
	}
}

func TestCompleteSpinZeroIDSettlesCurrent(t *testing.T) {
	s, _ := newTestSession(5 * time.Second)

	result, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)

	settledResult, settled := s.CompleteSpin(0)
	require.True(t, settled)
	assert.Equal(t, result.SpinID, settledResult.SpinID)
}

func TestCompleteSpinIgnoresStaleAndUnknownIDs(t *testing.T) {
	s, now := newTestSession(time.Second)

	first, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)
	_, settled := s.CompleteSpin(first.SpinID)
	require.True(t, settled)

	*now = now.Add(2 * time.Second)
	second, err := s.RequestSpin(domain.Player{Username: "b"})
	require.NoError(t, err)

	// A late callback for the previous spin must not settle the new one.
	_, settled = s.CompleteSpin(first.SpinID)
	assert.False(t, settled)

	// Nor does an id that never existed.
	_, settled = s.CompleteSpin(999)
	assert.False(t, settled)

	_, settled = s.CompleteSpin(second.SpinID)
	assert.True(t, settled)
}

func TestCompleteSpinBeforeAnySpin(t *testing.T) {
	s, _ := newTestSession(time.Second)

	result, settled := s.CompleteSpin(0)
	assert.False(t, settled)
	assert.Nil(t, result)
	assert.Equal(t, StateIdle, s.State())
}

func TestStateTransitions(t *testing.T) {
	s, _ := newTestSession(time.Second)
	assert.Equal(t, StateIdle, s.State())

	result, err := s.RequestSpin(domain.Player{Username: "a"})
	require.NoError(t, err)
	assert.Equal(t, StateSpinning, s.State())

	current, spinning := s.Current()
	assert.True(t, spinning)
	assert.Equal(t, result.SpinID, current.SpinID)

	_, settled := s.CompleteSpin(result.SpinID)
	require.True(t, settled)
	assert.Equal(t, StateSettled, s.State())

	current, spinning = s.Current()
	assert.False(t, spinning)
	assert.NotNil(t, current, "settled result stays visible until the next spin")
}

func TestDefaultCooldownFallback(t *testing.T) {
	s := New(&stubEngine{}, -time.Second)
	assert.Equal(t, DefaultCooldown, s.Cooldown())
}

func TestZeroCooldownAllowsImmediateSpins(t *testing.T) {
	s, _ := newTestSession(0)
	require.Equal(t, time.Duration(0), s.Cooldown())

	// With no cooldown, settle-then-spin works back to back at the same
	// clock instant.
	for want := uint64(1); want <= 3; want++ {
		result, err := s.RequestSpin(domain.Player{Username: "viewer"})
		require.NoError(t, err)
		assert.Equal(t, want, result.SpinID)

		_, settled := s.CompleteSpin(result.SpinID)
		require.True(t, settled)
	}

	// The in-flight guard still applies.
	_, err := s.RequestSpin(domain.Player{Username: "viewer"})
	require.NoError(t, err)
	_, err = s.RequestSpin(domain.Player{Username: "viewer"})
	assert.ErrorIs(t, err, ErrSpinInFlight)
}
