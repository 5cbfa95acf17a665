package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/gorilla/websocket"
)

// SnapshotMessageType tags the first frame of a stream.
const SnapshotMessageType = "countdown.snapshot"

// StreamConfig tunes the countdown websocket stream.
type StreamConfig struct {
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	// AllowedOrigins lists browser origins allowed to connect. Empty or "*"
	// allows any origin.
	AllowedOrigins []string
}

// DefaultStreamConfig returns the default websocket settings.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 1024,
	}
}

func (c StreamConfig) withDefaults() StreamConfig {
	def := DefaultStreamConfig()
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = def.PingInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	return c
}

func (c StreamConfig) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// StreamMessage is one frame of the countdown stream. The first frame carries
// the current snapshot, every later frame one countdown event.
type StreamMessage struct {
	Type     string                 `json:"type"`
	Snapshot *runner.Snapshot       `json:"snapshot,omitempty"`
	Event    *events.CountdownEvent `json:"event,omitempty"`
}

// Stream handles GET /api/countdowns/{kind}/stream by upgrading to a
// websocket that carries the countdown events of the device.
func (h *CountdownHandler) Stream(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := requireDevice(w, r)
	if !ok {
		return
	}
	kind, err := getPathKind(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// subscribe first so no event falls between the snapshot and the stream
	sub := h.hub.Subscribe(deviceID, kind)
	defer sub.Close()

	snap, err := h.sessions.Runner.Snapshot(r.Context(), deviceID, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load countdown")
		return
	}

	log := logger.FromContext(r.Context()).With(
		slog.String("component", "countdown_stream"),
		slog.String("kind", string(kind)))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the error response
		log.Warn("failed to upgrade websocket connection", slog.String("error", err.Error()))
		return
	}

	log.Info("countdown stream opened")
	defer log.Info("countdown stream closed")

	done := make(chan struct{})
	go h.readPump(conn, done, log)
	h.writePump(conn, sub, snap, done, log)
}

// writePump sends the snapshot, then events and pings, until the client goes
// away or the subscription closes.
func (h *CountdownHandler) writePump(
	conn *websocket.Conn,
	sub *events.Subscription,
	snap runner.Snapshot,
	done <-chan struct{},
	log *slog.Logger,
) {
	ticker := time.NewTicker(h.stream.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	write := func(msg StreamMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(h.stream.WriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("failed to write stream message", slog.String("error", err.Error()))
			return false
		}
		return true
	}

	if !write(StreamMessage{Type: SnapshotMessageType, Snapshot: &snap}) {
		return
	}

	for {
		select {
		case <-done:
			return
		case event, ok := <-sub.C:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"),
					time.Now().Add(h.stream.WriteTimeout))
				return
			}
			if !write(StreamMessage{Type: event.Type, Event: event}) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.stream.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to send ping", slog.String("error", err.Error()))
				return
			}
		}
	}
}

// readPump consumes client frames so pongs and close frames are processed.
// It closes done when the connection ends.
func (h *CountdownHandler) readPump(conn *websocket.Conn, done chan<- struct{}, log *slog.Logger) {
	defer close(done)

	conn.SetReadLimit(h.stream.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.stream.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.stream.ReadTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected websocket close", slog.String("error", err.Error()))
			}
			return
		}
	}
}
