package api

import (
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
)

// SettingsHandler handles the settings endpoints.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	settings, err := h.settings.Get(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// Patch handles PATCH /api/settings.
func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req SettingsPatchRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	settings, err := h.settings.Update(r.Context(), deviceID, domain.SettingsPatch{
		SoundEnabled:        req.SoundEnabled,
		VibrationEnabled:    req.VibrationEnabled,
		NotificationEnabled: req.NotificationEnabled,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}
