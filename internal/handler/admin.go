package handler

import (
	"net/http"

	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/logger"
)

// HandleResetLeaderboard clears all player stats
// @Summary Reset leaderboard
// @Description Clear all player aggregates; the jackpot ledger is untouched
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/reset [post]
func HandleResetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.Reset(r.Context()); err != nil {
			log.Error("Failed to reset leaderboard", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		log.Info("Leaderboard reset via admin endpoint")
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Leaderboard reset"})
	}
}

// HandleResetJackpots clears the jackpot ledger
// @Summary Reset jackpot ledger
// @Description Clear the jackpot ledger; player aggregates are untouched
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/reset-jackpots [post]
func HandleResetJackpots(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.ResetJackpots(r.Context()); err != nil {
			log.Error("Failed to reset jackpot ledger", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		log.Info("Jackpot ledger reset via admin endpoint")
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Jackpot ledger reset"})
	}
}
