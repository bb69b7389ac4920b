package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/habbi3/spinbot/internal/session"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := acquireBuffer()
	defer releaseBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgOnCooldownError    = "Spin is on cooldown. Try again shortly"
	ErrMsgSpinInFlightError  = "A spin is already in progress"
)

// mapServiceErrorToUserMessage maps session errors to user-friendly HTTP
// responses without leaking internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrOnCooldown{}):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, session.ErrSpinInFlight):
		return http.StatusConflict, ErrMsgSpinInFlightError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
