package leaderboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/logger"
	"github.com/habbi3/spinbot/internal/store"
)

// Store is the persistence this service needs: JSON blobs under fixed
// keys plus a broadcast channel for ledger changes.
type Store interface {
	Get(ctx context.Context, key string, v any) error
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	Publish(ctx context.Context, channel string, v any) error
}

// Service owns the per-player stats collection and the jackpot ledger.
type Service interface {
	// RecordSpin applies one settled spin to the player's aggregate and,
	// for jackpot tiers, to the jackpot ledger. The caller guarantees
	// at-most-once delivery per spin id; persistence is best-effort.
	RecordSpin(ctx context.Context, result *domain.SpinResult)

	// TopPlayers returns up to limit players sorted descending by tokens,
	// ties broken by first-seen order. A non-positive limit uses the
	// default.
	TopPlayers(ctx context.Context, limit int) []domain.PlayerStats

	// PlayerStats returns the aggregate for one player.
	PlayerStats(ctx context.Context, username string) (domain.PlayerStats, bool)

	// Totals aggregates the whole collection for overlay display.
	Totals(ctx context.Context) domain.LeaderboardTotals

	// JackpotLedger returns the bounded descending jackpot ledger.
	JackpotLedger(ctx context.Context) []domain.JackpotEntry

	// Reset clears all player stats and persists the empty collection.
	Reset(ctx context.Context) error

	// ResetJackpots clears the jackpot ledger and persists it.
	ResetJackpots(ctx context.Context) error
}

type service struct {
	mu    sync.RWMutex
	store Store

	players map[string]*domain.PlayerStats
	order   []string // usernames in first-seen order, for stable ties
	ledger  []domain.JackpotEntry

	now func() time.Time // injectable for testing
}

// NewService creates the leaderboard service and loads persisted state.
// Missing or corrupt blobs fall back to empty collections; load failures
// are reported, never fatal.
func NewService(ctx context.Context, st Store) Service {
	s := &service{
		store:   st,
		players: make(map[string]*domain.PlayerStats),
		now:     time.Now,
	}
	s.load(ctx)
	return s
}

func (s *service) load(ctx context.Context) {
	var saved []domain.PlayerStats
	switch err := s.store.Get(ctx, store.KeyLeaderboard, &saved); {
	case err == nil:
		for i := range saved {
			p := saved[i]
			s.players[p.Username] = &p
			s.order = append(s.order, p.Username)
		}
		logger.Info("Loaded leaderboard", "players", len(saved))
	case errors.Is(err, store.ErrNotFound):
		// First run
	default:
		logger.Warn("Failed to load leaderboard, starting empty", "error", err)
	}

	var ledger []domain.JackpotEntry
	switch err := s.store.Get(ctx, store.KeyJackpotLedger, &ledger); {
	case err == nil:
		s.ledger = ledger
		logger.Info("Loaded jackpot ledger", "entries", len(ledger))
	case errors.Is(err, store.ErrNotFound):
	default:
		logger.Warn("Failed to load jackpot ledger, starting empty", "error", err)
	}
}

func (s *service) RecordSpin(ctx context.Context, result *domain.SpinResult) {
	s.mu.Lock()

	username := result.Player.Username
	p, ok := s.players[username]
	if !ok {
		p = &domain.PlayerStats{Username: username}
		s.players[username] = p
		s.order = append(s.order, username)
	}

	p.Spins++
	p.Tokens += result.Tokens
	if result.IsJackpot {
		p.Jackpots++
	}
	p.LastPlayed = s.now()

	ledgerChanged := false
	if result.IsJackpot {
		s.ledger = append(s.ledger, domain.JackpotEntry{
			Username: username,
			Score:    result.Tokens,
		})
		sort.SliceStable(s.ledger, func(i, j int) bool {
			return s.ledger[i].Score > s.ledger[j].Score
		})
		if len(s.ledger) > MaxJackpotEntries {
			s.ledger = s.ledger[:MaxJackpotEntries]
		}
		ledgerChanged = true
	}

	players := s.snapshotLocked()
	ledger := append([]domain.JackpotEntry(nil), s.ledger...)
	s.mu.Unlock()

	// Flush every mutation immediately; failures are logged and the next
	// mutation retries naturally.
	if err := s.store.Set(ctx, store.KeyLeaderboard, players); err != nil {
		logger.Warn("Failed to persist leaderboard", "error", err)
	}
	if ledgerChanged {
		if err := s.store.Set(ctx, store.KeyJackpotLedger, ledger); err != nil {
			logger.Warn("Failed to persist jackpot ledger", "error", err)
		}
		if err := s.store.Publish(ctx, store.ChannelJackpotLedger, ledger); err != nil {
			logger.Warn("Failed to publish jackpot ledger update", "error", err)
		}
	}
}

// snapshotLocked returns the players in first-seen order. Callers hold the
// lock.
func (s *service) snapshotLocked() []domain.PlayerStats {
	players := make([]domain.PlayerStats, 0, len(s.order))
	for _, username := range s.order {
		players = append(players, *s.players[username])
	}
	return players
}

func (s *service) TopPlayers(ctx context.Context, limit int) []domain.PlayerStats {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	s.mu.RLock()
	players := s.snapshotLocked()
	s.mu.RUnlock()

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Tokens > players[j].Tokens
	})
	if len(players) > limit {
		players = players[:limit]
	}
	return players
}

func (s *service) PlayerStats(ctx context.Context, username string) (domain.PlayerStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[username]
	if !ok {
		return domain.PlayerStats{}, false
	}
	return *p, true
}

func (s *service) Totals(ctx context.Context) domain.LeaderboardTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := domain.LeaderboardTotals{Players: len(s.players)}
	for _, p := range s.players {
		totals.Spins += p.Spins
		totals.Tokens += p.Tokens
		totals.Jackpots += p.Jackpots
	}
	return totals
}

func (s *service) JackpotLedger(ctx context.Context) []domain.JackpotEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.JackpotEntry(nil), s.ledger...)
}

func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.players = make(map[string]*domain.PlayerStats)
	s.order = nil
	s.mu.Unlock()

	if err := s.store.Set(ctx, store.KeyLeaderboard, []domain.PlayerStats{}); err != nil {
		return err
	}
	logger.Info("Leaderboard reset")
	return nil
}

func (s *service) ResetJackpots(ctx context.Context) error {
	s.mu.Lock()
	s.ledger = nil
	s.mu.Unlock()

	if err := s.store.Set(ctx, store.KeyJackpotLedger, []domain.JackpotEntry{}); err != nil {
		return err
	}
	if err := s.store.Publish(ctx, store.ChannelJackpotLedger, []domain.JackpotEntry{}); err != nil {
		logger.Warn("Failed to publish jackpot ledger reset", "error", err)
	}
	logger.Info("Jackpot ledger reset")
	return nil
}
