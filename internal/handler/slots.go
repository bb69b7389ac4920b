package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/habbi3/spinbot/internal/domain"
	"github.com/habbi3/spinbot/internal/logger"
	"github.com/habbi3/spinbot/internal/slots"
)

// CurrentSpinResponse is the overlay's polling view of the session.
type CurrentSpinResponse struct {
	Result     *domain.SpinResult `json:"result"`
	Spinning   bool               `json:"spinning"`
	CooldownMS int64              `json:"cooldown_ms"`
}

// CompleteSpinRequest is the renderer's completion callback body. A zero
// or omitted spin_id settles the current spin.
type CompleteSpinRequest struct {
	SpinID uint64 `json:"spin_id"`
}

// CompleteSpinResponse reports whether this callback settled the spin.
type CompleteSpinResponse struct {
	Settled bool               `json:"settled"`
	Result  *domain.SpinResult `json:"result,omitempty"`
}

// TestSpinRequest is the dev-endpoint body for a synthetic spin.
type TestSpinRequest struct {
	Username string `json:"username" validate:"omitempty,max=64,excludesall=\x00\n\r\t"`
}

// DefaultTestUsername is used when a test spin request names nobody.
const DefaultTestUsername = "TestPlayer"

// HandleGetCurrentSpin returns the latest spin and session status
// @Summary Current spin
// @Description Get the most recent spin result, whether it is still animating, and the remaining cooldown
// @Tags spin
// @Produce json
// @Success 200 {object} CurrentSpinResponse
// @Router /spin/current [get]
func HandleGetCurrentSpin(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, spinning, cooldown := svc.Current(r.Context())

		respondJSON(w, http.StatusOK, CurrentSpinResponse{
			Result:     result,
			Spinning:   spinning,
			CooldownMS: cooldown.Milliseconds(),
		})
	}
}

// HandleCompleteSpin settles a spin after the overlay finishes animating
// @Summary Complete spin
// @Description Renderer callback marking the spin animation as finished; idempotent per spin id
// @Tags spin
// @Accept json
// @Produce json
// @Param request body CompleteSpinRequest false "Spin to settle (zero id means current)"
// @Success 200 {object} CompleteSpinResponse
// @Failure 400 {object} ErrorResponse
// @Router /spin/complete [post]
func HandleCompleteSpin(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		// Body is optional; an empty body settles the current spin
		var req CompleteSpinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Warn("Invalid complete spin body", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result, settled := svc.CompleteSpin(r.Context(), req.SpinID)
		respondJSON(w, http.StatusOK, CompleteSpinResponse{
			Settled: settled,
			Result:  result,
		})
	}
}

// HandleTestSpin triggers a spin without a chat message
// @Summary Test spin
// @Description Start a spin for a synthetic player; obeys normal cooldown rules
// @Tags spin
// @Accept json
// @Produce json
// @Param request body TestSpinRequest false "Test player name"
// @Success 200 {object} domain.SpinResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /spin/test [post]
func HandleTestSpin(svc slots.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TestSpinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}
		if req.Username == "" {
			req.Username = DefaultTestUsername
		}

		result, err := svc.TestSpin(r.Context(), req.Username)
		if err != nil {
			log.Debug("Test spin rejected", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
