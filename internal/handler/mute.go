package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habbi3/spinbot/internal/logger"
	"github.com/habbi3/spinbot/internal/store"
)

// MutePreference is the overlay's persisted sound setting. It survives
// restarts so the widget comes back the way the streamer left it.
type MutePreference struct {
	Muted bool `json:"muted"`
}

// HandleGetMute returns the persisted mute preference
// @Summary Get mute preference
// @Description Get the overlay's persisted sound setting; defaults to unmuted
// @Tags preferences
// @Produce json
// @Success 200 {object} MutePreference
// @Router /mute [get]
func HandleGetMute(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var pref MutePreference
		if err := st.Get(r.Context(), store.KeyMutePreference, &pref); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Warn("Failed to load mute preference, defaulting to unmuted", "error", err)
			}
			pref = MutePreference{}
		}

		respondJSON(w, http.StatusOK, pref)
	}
}

// HandleSetMute persists the mute preference
// @Summary Set mute preference
// @Description Persist the overlay's sound setting
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body MutePreference true "Mute preference"
// @Success 200 {object} MutePreference
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /mute [put]
func HandleSetMute(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var pref MutePreference
		if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := st.Set(r.Context(), store.KeyMutePreference, pref); err != nil {
			log.Error("Failed to persist mute preference", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		respondJSON(w, http.StatusOK, pref)
	}
}
