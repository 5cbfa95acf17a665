package api

import (
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
)

// TimerHandler handles the timer list and timer tab endpoints.
type TimerHandler struct {
	timers   service.TimerService
	sessions *runner.Sessions
}

// NewTimerHandler creates a new TimerHandler.
func NewTimerHandler(timers service.TimerService, sessions *runner.Sessions) *TimerHandler {
	return &TimerHandler{timers: timers, sessions: sessions}
}

// List handles GET /api/timers.
func (h *TimerHandler) List(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	timers, err := h.timers.List(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load timers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, timers)
}

// Create handles POST /api/timers.
func (h *TimerHandler) Create(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}

	var req CreateTimerRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	timer, snap, err := h.sessions.AddTimer(r.Context(), deviceID, req.Title, req.Minutes, req.Start)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add timer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, TimerResponse{Timer: timer, Countdown: snap})
}

// Rename handles PATCH /api/timers/{id}.
func (h *TimerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	id, err := getPathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req RenameTimerRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	timer, err := h.timers.Rename(r.Context(), deviceID, id, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename timer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, timer)
}

// Delete handles DELETE /api/timers/{id}. It answers with the remaining timers.
func (h *TimerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	id, err := getPathInt(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	timers, err := h.timers.Remove(r.Context(), deviceID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete timer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, timers)
}

// Tabs handles GET /api/timers/tabs.
func (h *TimerHandler) Tabs(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	tabs, err := h.timers.Tabs(r.Context(), deviceID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load timer tabs")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tabs)
}

// SetTab handles PUT /api/timers/tabs/{index}.
func (h *TimerHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	index, err := getPathInt(r, "index")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SetTabRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	tabs, err := h.timers.SetTab(r.Context(), deviceID, index, req.Minutes)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update timer tab")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tabs)
}
