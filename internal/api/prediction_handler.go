package api

import (
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
)

// PredictionHandler handles the prediction endpoints.
type PredictionHandler struct {
	predictions service.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(predictions service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Catalog handles GET /api/predictions.
func (h *PredictionHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.predictions.Catalog())
}

// Draw handles POST /api/predictions/draw.
func (h *PredictionHandler) Draw(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	prediction, err := h.predictions.Draw(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to draw a prediction")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prediction)
}

// Saved handles GET /api/predictions/saved.
func (h *PredictionHandler) Saved(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	saved, err := h.predictions.Saved(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load saved predictions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// Toggle handles POST /api/predictions/{id}/toggle.
func (h *PredictionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	id, err := getPathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	saved, list, err := h.predictions.Toggle(r.Context(), deviceID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update saved predictions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToggleResponse{Saved: saved, Predictions: list})
}

// Share handles GET /api/predictions/{id}/share.
func (h *PredictionHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	message, err := h.predictions.ShareMessage(id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to share prediction")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ShareResponse{Message: message})
}
