package slots

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/event"
	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/logger"
	"github.com/habbi3/spinbot/internal/metrics"
	"github.com/habbi3/spinbot/internal/session"
)

// Service routes chat triggers into the spin session and fans settled
// outcomes out to the leaderboard and the event bus.
type Service interface {
	HandleTrigger(ctx context.Context, trigger domain.TriggerEvent)
	CompleteSpin(ctx context.Context, spinID uint64) (*domain.SpinResult, bool)
	Current(ctx context.Context) (*domain.SpinResult, bool, time.Duration)
	TestSpin(ctx context.Context, username string) (*domain.SpinResult, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	session     *session.Session
	leaderboard leaderboard.Service
	bus         event.Bus
	rewardID    string

	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewService creates a new slots service. rewardID is the channel-point
// reward that triggers a spin; empty disables redemption spins.
func NewService(sess *session.Session, lb leaderboard.Service, bus event.Bus, rewardID string) Service {
	return &service{
		session:     sess,
		leaderboard: lb,
		bus:         bus,
		rewardID:    rewardID,
		shutdown:    make(chan struct{}),
	}
}

// HandleTrigger routes a single chat trigger. Triggers never return errors
// to the transport; ineligible or malformed ones are logged and dropped.
func (s *service) HandleTrigger(ctx context.Context, trigger domain.TriggerEvent) {
	log := logger.FromContext(ctx)

	if trigger.Username == "" {
		log.Debug(LogMsgTriggerDropped, "kind", trigger.Kind)
		metrics.TriggersDropped.Inc()
		return
	}

	metrics.TriggersTotal.WithLabelValues(string(trigger.Kind)).Inc()

	if trigger.Kind == domain.TriggerRedemption {
		if s.rewardID == "" || trigger.RewardID != s.rewardID {
			log.Debug(LogMsgRewardMismatch, "reward_id", trigger.RewardID)
			metrics.TriggersDropped.Inc()
			return
		}
		s.requestSpin(ctx, trigger)
		return
	}

	switch trigger.Command {
	case CommandSpin, CommandSlots:
		s.requestSpin(ctx, trigger)

	case CommandLeaderboard, CommandLB, CommandTop:
		log.Debug(LogMsgLeaderboardToggle, "username", trigger.Username)
		s.publish(ctx, event.NewLeaderboardToggledEvent())

	case CommandResetSlots:
		if !trigger.IsBroadcaster {
			log.Debug(LogMsgResetDenied, "command", trigger.Command, "username", trigger.Username)
			return
		}
		if err := s.leaderboard.Reset(ctx); err != nil {
			log.Error("Failed to reset leaderboard", "error", err)
			return
		}
		log.Info(LogMsgLeaderboardReset, "username", trigger.Username)
		s.publishLeaderboard(ctx)

	case CommandResetJackpots:
		if !trigger.IsBroadcaster {
			log.Debug(LogMsgResetDenied, "command", trigger.Command, "username", trigger.Username)
			return
		}
		if err := s.leaderboard.ResetJackpots(ctx); err != nil {
			log.Error("Failed to reset jackpot ledger", "error", err)
			return
		}
		log.Info(LogMsgJackpotLedgerReset, "username", trigger.Username)
		s.publish(ctx, event.NewJackpotLedgerEvent(s.leaderboard.JackpotLedger(ctx)))

	default:
		log.Debug(LogMsgUnknownCommand, "command", trigger.Command)
		metrics.TriggersDropped.Inc()
	}
}

func (s *service) requestSpin(ctx context.Context, trigger domain.TriggerEvent) {
	log := logger.FromContext(ctx)

	player := domain.Player{Username: trigger.Username, Color: trigger.Color}
	result, err := s.session.RequestSpin(player)
	if err != nil {
		var cooldownErr session.ErrOnCooldown
		switch {
		case errors.As(err, &cooldownErr):
			log.Debug(LogMsgSpinRejected, "username", player.Username,
				"reason", metrics.ReasonCooldown, "remaining", cooldownErr.Remaining)
			metrics.TriggersRejected.WithLabelValues(metrics.ReasonCooldown).Inc()
		case errors.Is(err, session.ErrSpinInFlight):
			log.Debug(LogMsgSpinRejected, "username", player.Username,
				"reason", metrics.ReasonInFlight)
			metrics.TriggersRejected.WithLabelValues(metrics.ReasonInFlight).Inc()
		default:
			log.Warn(LogMsgSpinRejected, "username", player.Username, "error", err)
		}
		return
	}

	log.Info(LogMsgSpinStarted, "spin_id", result.SpinID, "username", player.Username)
	s.publish(ctx, event.NewSpinStartedEvent(result.SpinID, player))
}

// CompleteSpin settles a spin by id (zero means current). Side effects run
// exactly once per spin id: the session's settlement guard makes repeated
// completion callbacks no-ops.
func (s *service) CompleteSpin(ctx context.Context, spinID uint64) (*domain.SpinResult, bool) {
	log := logger.FromContext(ctx)

	result, settled := s.session.CompleteSpin(spinID)
	if !settled {
		return nil, false
	}

	log.Info(LogMsgSpinSettled,
		"spin_id", result.SpinID,
		"username", result.Player.Username,
		"tier", result.Tier,
		"tokens", result.Tokens)

	// Leaderboard write and fan-out are async; HandleTrigger must not
	// block on store round trips.
	s.wg.Add(1)
	go s.settle(result)

	return result, true
}

func (s *service) settle(result *domain.SpinResult) {
	defer s.wg.Done()
	ctx := context.Background()

	s.leaderboard.RecordSpin(ctx, result)

	s.publish(ctx, event.NewSpinSettledEvent(*result))
	s.publishLeaderboard(ctx)
	if result.IsJackpot {
		s.publish(ctx, event.NewJackpotLedgerEvent(s.leaderboard.JackpotLedger(ctx)))
	}
}

// Current returns the latest result, whether a spin is in flight, and the
// remaining cooldown.
func (s *service) Current(_ context.Context) (*domain.SpinResult, bool, time.Duration) {
	result, spinning := s.session.Current()
	return result, spinning, s.session.CooldownRemaining()
}

// TestSpin runs a spin through the normal eligibility rules for a synthetic
// player. Used by the dev endpoint to exercise the overlay.
func (s *service) TestSpin(ctx context.Context, username string) (*domain.SpinResult, error) {
	log := logger.FromContext(ctx)

	player := domain.Player{Username: username, Color: TestPlayerColor}
	result, err := s.session.RequestSpin(player)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgSpinStarted, "spin_id", result.SpinID, "username", username, "test", true)
	s.publish(ctx, event.NewSpinStartedEvent(result.SpinID, player))
	return result, nil
}

func (s *service) publishLeaderboard(ctx context.Context) {
	top := s.leaderboard.TopPlayers(ctx, leaderboard.DefaultTopLimit)
	s.publish(ctx, event.NewLeaderboardUpdatedEvent(top, s.leaderboard.Totals(ctx)))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "event_type", evt.Type, "error", err)
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	}
}

// Shutdown waits for in-flight settlement side effects to drain.
func (s *service) Shutdown(ctx context.Context) error {
	close(s.shutdown)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
