package events

import (
	"context"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/google/uuid"
)

// Countdown event types.
const (
	TypeStarted = "countdown.started"
	TypePaused  = "countdown.paused"
	TypeReset   = "countdown.reset"
	TypeTick    = "countdown.tick"
	TypeExpired = "countdown.expired"
)

// CountdownEvent reports the state of a device countdown after a change.
type CountdownEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the countdown.* event types
	Type string `json:"type"`

	DeviceID string         `json:"device_id"`
	Kind     countdown.Kind `json:"kind"`

	RemainingSeconds int    `json:"remaining_seconds"`
	Running          bool   `json:"running"`
	Display          string `json:"display"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewCountdownEvent creates an event carrying a snapshot of state.
func NewCountdownEvent(
	eventType string,
	deviceID string,
	kind countdown.Kind,
	state countdown.State,
	at time.Time,
) *CountdownEvent {
	return &CountdownEvent{
		ID:               uuid.New(),
		Type:             eventType,
		DeviceID:         deviceID,
		Kind:             kind,
		RemainingSeconds: state.RemainingSeconds,
		Running:          state.Running,
		Display:          state.Display(),
		CreatedAt:        at.UTC(),
	}
}

// EventHandler defines the interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes an event and returns an error if processing fails.
	HandleEvent(ctx context.Context, event *CountdownEvent) error
}

// EventEmitter defines the interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes an event to all registered handlers.
	EmitEvent(ctx context.Context, event *CountdownEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *CountdownEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *CountdownEvent) error {
	return f(ctx, event)
}
