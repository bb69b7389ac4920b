package handler

import (
	"net/http"
	"strconv"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/logger"
)

// LeaderboardResponse carries the top players list.
type LeaderboardResponse struct {
	Players []domain.PlayerStats `json:"players"`
}

// JackpotLedgerResponse carries the bounded jackpot ledger.
type JackpotLedgerResponse struct {
	Entries []domain.JackpotEntry `json:"entries"`
}

// HandleGetLeaderboard returns the top players
// @Summary Leaderboard
// @Description Get the top players sorted by total tokens
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Maximum players to return"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Router /leaderboard [get]
func HandleGetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				log.Warn("Invalid limit parameter", "limit", raw)
				respondError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			limit = parsed
		}

		players := svc.TopPlayers(r.Context(), limit)
		respondJSON(w, http.StatusOK, LeaderboardResponse{Players: players})
	}
}

// HandleGetLeaderboardStats returns whole-board aggregates
// @Summary Leaderboard totals
// @Description Get total players, spins, tokens and jackpots across the board
// @Tags leaderboard
// @Produce json
// @Success 200 {object} domain.LeaderboardTotals
// @Router /leaderboard/stats [get]
func HandleGetLeaderboardStats(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Totals(r.Context()))
	}
}

// HandleGetJackpots returns the jackpot ledger
// @Summary Jackpot ledger
// @Description Get the bounded list of biggest jackpot wins, descending
// @Tags leaderboard
// @Produce json
// @Success 200 {object} JackpotLedgerResponse
// @Router /jackpots [get]
func HandleGetJackpots(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, JackpotLedgerResponse{Entries: svc.JackpotLedger(r.Context())})
	}
}
