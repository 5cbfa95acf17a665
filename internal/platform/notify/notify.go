// Package notify delivers haptic, sound and notification signals.
//
// Signals are fire-and-forget: callers log a failed Fire and carry on, a
// delivery failure never changes countdown state.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
)

// SignalKind is the output channel a signal is meant for.
type SignalKind string

const (
	SignalHaptic       SignalKind = "haptic"
	SignalSound        SignalKind = "sound"
	SignalNotification SignalKind = "notification"
)

// Signal asks a device to vibrate, play a sound or show a notification.
type Signal struct {
	DeviceID  string         `json:"device_id"`
	Kind      SignalKind     `json:"kind"`
	Countdown countdown.Kind `json:"countdown"`
	Message   string         `json:"message,omitempty"`
	At        time.Time      `json:"at"`
}

// Trigger delivers signals.
type Trigger interface {
	Fire(ctx context.Context, signal Signal) error
}

// LogTrigger writes every signal to a logger. It is the delivery used when no
// broker is configured.
type LogTrigger struct {
	logger *slog.Logger
}

// NewLogTrigger creates a LogTrigger. If logger is nil, slog.Default() is used.
func NewLogTrigger(logger *slog.Logger) *LogTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTrigger{logger: logger.With(slog.String("component", "log_trigger"))}
}

// Fire logs signal at debug level for haptics and info level otherwise.
func (t *LogTrigger) Fire(ctx context.Context, signal Signal) error {
	level := slog.LevelInfo
	if signal.Kind == SignalHaptic {
		level = slog.LevelDebug
	}
	t.logger.Log(ctx, level, "signal",
		slog.String("device_id", signal.DeviceID),
		slog.String("kind", string(signal.Kind)),
		slog.String("countdown", string(signal.Countdown)),
		slog.String("message", signal.Message))
	return nil
}

// Multi fires every trigger and joins their errors.
type Multi []Trigger

// Fire implements Trigger.
func (m Multi) Fire(ctx context.Context, signal Signal) error {
	var errs []error
	for _, t := range m {
		if err := t.Fire(ctx, signal); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
