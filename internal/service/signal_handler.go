package service

import (
	"context"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/notify"
)

// ExpiredMessage is the notification text sent when a countdown runs out.
const ExpiredMessage = "Time is up"

// SignalHandler turns countdown events into haptic, sound and notification
// signals, each gated by the matching device setting. Delivery is
// fire-and-forget: failures are logged and never returned to the emitter.
type SignalHandler struct {
	settings SettingsService
	trigger  notify.Trigger
	logger   *slog.Logger
}

var _ events.EventHandler = (*SignalHandler)(nil)

// NewSignalHandler creates a SignalHandler.
func NewSignalHandler(settings SettingsService, trigger notify.Trigger, logger *slog.Logger) (*SignalHandler, error) {
	if settings == nil {
		return nil, missing("signal", "settings")
	}
	if trigger == nil {
		return nil, missing("signal", "trigger")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SignalHandler{
		settings: settings,
		trigger:  trigger,
		logger:   logger.With(slog.String("component", "signal_handler")),
	}, nil
}

// HandleEvent implements events.EventHandler.
func (h *SignalHandler) HandleEvent(ctx context.Context, event *events.CountdownEvent) error {
	if event.Type != events.TypeTick && event.Type != events.TypeExpired {
		return nil
	}

	settings, err := h.settings.Get(ctx, event.DeviceID)
	if err != nil {
		h.logger.Warn("cannot resolve settings for signal",
			slog.String("device_id", event.DeviceID),
			slog.String("error", err.Error()))
		return nil
	}

	var kinds []notify.SignalKind
	switch event.Type {
	case events.TypeTick:
		if settings.VibrationEnabled {
			kinds = append(kinds, notify.SignalHaptic)
		}
	case events.TypeExpired:
		kinds = expiredSignals(settings)
	}

	for _, kind := range kinds {
		signal := notify.Signal{
			DeviceID:  event.DeviceID,
			Kind:      kind,
			Countdown: event.Kind,
			At:        event.CreatedAt,
		}
		if kind != notify.SignalHaptic {
			signal.Message = ExpiredMessage
		}
		if err := h.trigger.Fire(ctx, signal); err != nil {
			h.logger.Warn("signal delivery failed",
				slog.String("device_id", event.DeviceID),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func expiredSignals(settings domain.Settings) []notify.SignalKind {
	var kinds []notify.SignalKind
	if settings.SoundEnabled {
		kinds = append(kinds, notify.SignalSound)
	}
	if settings.NotificationEnabled {
		kinds = append(kinds, notify.SignalNotification)
	}
	return kinds
}
