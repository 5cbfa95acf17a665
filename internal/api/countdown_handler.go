package api

import (
	"fmt"
	"net/http"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api/shared"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/gorilla/websocket"
)

var (
	errAmbiguousSelection = fmt.Errorf("%w: choose exactly one of tab, timer_id, meditation_id or minutes", domain.ErrValidation)
	errKindMismatch       = fmt.Errorf("%w: selection does not belong to this countdown", domain.ErrValidation)
)

// CountdownHandler controls the live countdowns of a device and streams
// their events.
type CountdownHandler struct {
	sessions *runner.Sessions
	hub      *events.Hub
	stream   StreamConfig
	upgrader websocket.Upgrader
}

// NewCountdownHandler creates a new CountdownHandler.
// Zero fields of stream take their value from DefaultStreamConfig.
func NewCountdownHandler(sessions *runner.Sessions, hub *events.Hub, stream StreamConfig) *CountdownHandler {
	stream = stream.withDefaults()
	return &CountdownHandler{
		sessions: sessions,
		hub:      hub,
		stream:   stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     stream.checkOrigin,
		},
	}
}

// control runs op on the countdown named by the path and writes the result.
func (h *CountdownHandler) control(
	w http.ResponseWriter,
	r *http.Request,
	op func(deviceID string, kind countdown.Kind) (runner.Snapshot, error),
) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	kind, err := getPathKind(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	snap, err := op(deviceID, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Countdown operation failed")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

// Get handles GET /api/countdowns/{kind}.
func (h *CountdownHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(deviceID string, kind countdown.Kind) (runner.Snapshot, error) {
		return h.sessions.Runner.Snapshot(r.Context(), deviceID, kind)
	})
}

// Start handles POST /api/countdowns/{kind}/start.
func (h *CountdownHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(deviceID string, kind countdown.Kind) (runner.Snapshot, error) {
		return h.sessions.Runner.Start(r.Context(), deviceID, kind)
	})
}

// Pause handles POST /api/countdowns/{kind}/pause.
func (h *CountdownHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(deviceID string, kind countdown.Kind) (runner.Snapshot, error) {
		return h.sessions.Runner.Pause(r.Context(), deviceID, kind)
	})
}

// Reset handles POST /api/countdowns/{kind}/reset.
func (h *CountdownHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, func(deviceID string, kind countdown.Kind) (runner.Snapshot, error) {
		return h.sessions.Runner.Reset(r.Context(), deviceID, kind)
	})
}

// Select handles POST /api/countdowns/{kind}/select.
func (h *CountdownHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	h.control(w, r, func(deviceID string, kind countdown.Kind) (runner.Snapshot, error) {
		if req.sources() != 1 {
			return runner.Snapshot{}, errAmbiguousSelection
		}

		ctx := r.Context()
		switch {
		case req.Tab != nil:
			if kind != countdown.KindTimer {
				return runner.Snapshot{}, errKindMismatch
			}
			return h.sessions.SelectTab(ctx, deviceID, *req.Tab, req.Force)
		case req.TimerID != nil:
			if kind != countdown.KindTimer {
				return runner.Snapshot{}, errKindMismatch
			}
			return h.sessions.SelectTimer(ctx, deviceID, *req.TimerID, req.Force)
		case req.MeditationID != nil:
			if kind != countdown.KindMeditation {
				return runner.Snapshot{}, errKindMismatch
			}
			return h.sessions.SelectMeditation(ctx, deviceID, *req.MeditationID, req.Force)
		default:
			return h.sessions.Runner.Select(ctx, deviceID, kind, *req.Minutes, req.Force)
		}
	})
}
