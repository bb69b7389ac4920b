package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/habbi3/spinbot/internal/domain"
)

// State is the spin session lifecycle state.
type State string

const (
	// StateIdle means no spin has run yet (or the session was reset).
	StateIdle State = "idle"

	// StateSpinning means a result exists and its settlement is pending.
	StateSpinning State = "spinning"

	// StateSettled means the last spin's side effects have been applied;
	// the session is eligible for a new request once the cooldown expires.
	StateSettled State = "settled"
)

// DefaultCooldown is the global cooldown between spin starts.
const DefaultCooldown = 5 * time.Second

// settledHistorySize bounds the set of recently settled spin ids kept to
// absorb stale duplicate completion callbacks for older spins.
const settledHistorySize = 64

// ErrOnCooldown is returned by RequestSpin while the global cooldown is
// still running.
type ErrOnCooldown struct {
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf("spin on cooldown: %.1fs remaining", e.Remaining.Seconds())
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// ErrSpinInFlight is returned by RequestSpin while a spin is spinning.
var ErrSpinInFlight = errors.New("a spin is already in progress")

// Engine produces outcomes for requested spins.
type Engine interface {
	Spin(player domain.Player) *domain.SpinResult
}

// Session is the single-active-spin state machine. It owns the current
// SpinResult until settlement and enforces the global cooldown. All methods
// are safe for concurrent use; the mutex serializes the event-at-a-time
// model the widget relies on.
type Session struct {
	mu sync.Mutex

	engine   Engine
	cooldown time.Duration
	now      func() time.Time // injectable for testing

	state         State
	spinCounter   uint64
	lastSpinStart time.Time
	current       *domain.SpinResult
	settled       *lru.Cache[uint64, struct{}]
}

// New creates an idle session. A negative cooldown falls back to the
// default; zero is a real setting meaning no cooldown at all.
func New(engine Engine, cooldown time.Duration) *Session {
	if cooldown < 0 {
		cooldown = DefaultCooldown
	}
	settled, _ := lru.New[uint64, struct{}](settledHistorySize)
	return &Session{
		engine:   engine,
		cooldown: cooldown,
		now:      time.Now,
		state:    StateIdle,
		settled:  settled,
	}
}

// RequestSpin starts a new spin for the player if the session is eligible:
// no spin in flight and the cooldown has elapsed. Ineligible requests are
// rejected, never queued.
func (s *Session) RequestSpin(player domain.Player) (*domain.SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return nil, ErrSpinInFlight
	}
	if remaining := s.cooldownRemainingLocked(); remaining > 0 {
		return nil, ErrOnCooldown{Remaining: remaining}
	}

	s.spinCounter++
	result := s.engine.Spin(player)
	result.SpinID = s.spinCounter

	s.current = result
	s.state = StateSpinning
	s.lastSpinStart = s.now()

	return result, nil
}

// CompleteSpin settles the spin with the given id, or the current spin when
// id is zero. Only the first call per spin id reports settled=true; any
// later call for the same id (or for an unknown id) is a no-op. This is the
// guard against duplicate animation-complete callbacks.
func (s *Session) CompleteSpin(spinID uint64) (*domain.SpinResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.state != StateSpinning {
		return nil, false
	}
	if spinID != 0 && spinID != s.current.SpinID {
		return nil, false
	}
	if _, seen := s.settled.Get(s.current.SpinID); seen {
		return nil, false
	}

	s.settled.Add(s.current.SpinID, struct{}{})
	s.state = StateSettled

	return s.current, true
}

// Current returns the most recent result (nil before the first spin) and
// whether a spin is in flight.
func (s *Session) Current() (*domain.SpinResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.state == StateSpinning
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CooldownRemaining reports how long until the next spin is eligible. It is
// derived from the wall-clock delta since the last spin start, so it never
// drifts with timer scheduling jitter.
func (s *Session) CooldownRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldownRemainingLocked()
}

// Cooldown returns the configured cooldown duration.
func (s *Session) Cooldown() time.Duration {
	return s.cooldown
}

func (s *Session) cooldownRemainingLocked() time.Duration {
	if s.lastSpinStart.IsZero() {
		return 0
	}
	remaining := s.cooldown - s.now().Sub(s.lastSpinStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}
