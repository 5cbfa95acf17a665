package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// kvAccess is the optimistic persistence shared by the services.
type kvAccess struct {
	devices store.DeviceStore
	logger  *slog.Logger
}

func newKVAccess(devices store.DeviceStore, log *slog.Logger, component string) kvAccess {
	if log == nil {
		log = slog.Default()
	}
	return kvAccess{
		devices: devices,
		logger:  log.With(slog.String("component", component)),
	}
}

func (a kvAccess) log(ctx context.Context, deviceID string) *slog.Logger {
	return logger.FromContextOrDefault(ctx, a.logger).With(slog.String("device_id", deviceID))
}

// read decodes key into v. It returns store.ErrKeyNotFound when the key is
// absent; any other failure is logged before it is returned, and v is left
// untouched.
func (a kvAccess) read(ctx context.Context, deviceID, key string, v any) error {
	err := store.GetJSON(ctx, a.devices.ForDevice(deviceID), key, v)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		a.log(ctx, deviceID).Error("failed to load value",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return err
}

// write stores v under key. Failures are logged and swallowed.
func (a kvAccess) write(ctx context.Context, deviceID, key string, v any) {
	if err := store.SetJSON(ctx, a.devices.ForDevice(deviceID), key, v); err != nil {
		a.log(ctx, deviceID).Error("failed to save value",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// writeMany stores values atomically. Failures are logged and swallowed.
func (a kvAccess) writeMany(ctx context.Context, deviceID string, values map[string]any) {
	entries, err := store.EncodeJSON(values)
	if err == nil {
		err = a.devices.ForDevice(deviceID).SetMany(ctx, entries)
	}
	if err != nil {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		a.log(ctx, deviceID).Error("failed to save values",
			slog.Any("keys", keys),
			slog.String("error", err.Error()))
	}
}

// timerTabs loads the tab durations, writing the defaults the first time they
// are asked for. Stored tabs that fail validation fall back to the defaults.
func (a kvAccess) timerTabs(ctx context.Context, deviceID string) domain.TimerTabs {
	var tabs domain.TimerTabs
	err := a.read(ctx, deviceID, store.KeyTimerTabs, &tabs)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		a.write(ctx, deviceID, store.KeyTimerTabs, domain.DefaultTimerTabs)
		return domain.DefaultTimerTabs
	case err != nil:
		return domain.DefaultTimerTabs
	}

	if err := tabs.Validate(); err != nil {
		a.log(ctx, deviceID).Warn("stored timer tabs are invalid, using defaults",
			slog.Any("tabs", tabs),
			slog.String("error", err.Error()))
		return domain.DefaultTimerTabs
	}
	return tabs
}

func validateDevice(deviceID string) error {
	if err := store.ValidateKey(deviceID); err != nil {
		return domain.ErrEmptyDeviceID
	}
	return nil
}
