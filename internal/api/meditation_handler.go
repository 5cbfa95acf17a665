package api

import (
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
)

// MeditationHandler handles the meditation session endpoints.
type MeditationHandler struct {
	meditations service.MeditationService
	sessions    *runner.Sessions
}

// NewMeditationHandler creates a new MeditationHandler.
func NewMeditationHandler(meditations service.MeditationService, sessions *runner.Sessions) *MeditationHandler {
	return &MeditationHandler{meditations: meditations, sessions: sessions}
}

// List handles GET /api/meditations.
func (h *MeditationHandler) List(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	list, err := h.meditations.List(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load meditations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// Create handles POST /api/meditations.
func (h *MeditationHandler) Create(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req CreateMeditationRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	session, snap, err := h.sessions.AddMeditation(r.Context(), deviceID, req.Minutes, req.Start)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add meditation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, MeditationResponse{Meditation: session, Countdown: snap})
}

// Delete handles DELETE /api/meditations/{id}.
func (h *MeditationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	id, err := getPathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	list, err := h.meditations.Remove(r.Context(), deviceID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete meditation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}
