package service

import (
	"context"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// SettingsService reads and updates the per-device settings.
type SettingsService interface {
	// Get returns the current settings. Flags that were never stored are on.
	Get(ctx context.Context, deviceID string) (domain.Settings, error)

	// Update applies patch and stores the changed flags in one atomic write.
	Update(ctx context.Context, deviceID string, patch domain.SettingsPatch) (domain.Settings, error)
}

type settingsServiceImpl struct {
	kv kvAccess
}

var _ SettingsService = (*settingsServiceImpl)(nil)

// NewSettingsService creates a SettingsService over devices.
func NewSettingsService(devices store.DeviceStore, logger *slog.Logger) (SettingsService, error) {
	if devices == nil {
		return nil, missing("settings", "devices")
	}
	return &settingsServiceImpl{kv: newKVAccess(devices, logger, "settings_service")}, nil
}

func (s *settingsServiceImpl) flag(ctx context.Context, deviceID, key string) bool {
	var v bool
	if err := s.kv.read(ctx, deviceID, key, &v); err != nil {
		return true
	}
	return v
}

func (s *settingsServiceImpl) Get(ctx context.Context, deviceID string) (domain.Settings, error) {
	if err := validateDevice(deviceID); err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{
		SoundEnabled:        s.flag(ctx, deviceID, store.KeySoundEnabled),
		VibrationEnabled:    s.flag(ctx, deviceID, store.KeyVibrationEnabled),
		NotificationEnabled: s.flag(ctx, deviceID, store.KeyNotificationEnabled),
		TimerTabs:           s.kv.timerTabs(ctx, deviceID),
	}, nil
}

func (s *settingsServiceImpl) Update(
	ctx context.Context,
	deviceID string,
	patch domain.SettingsPatch,
) (domain.Settings, error) {
	current, err := s.Get(ctx, deviceID)
	if err != nil {
		return domain.Settings{}, err
	}

	next := patch.Apply(current)

	changes := map[string]any{}
	if patch.SoundEnabled != nil {
		changes[store.KeySoundEnabled] = next.SoundEnabled
	}
	if patch.VibrationEnabled != nil {
		changes[store.KeyVibrationEnabled] = next.VibrationEnabled
	}
	if patch.NotificationEnabled != nil {
		changes[store.KeyNotificationEnabled] = next.NotificationEnabled
	}
	if len(changes) > 0 {
		s.kv.writeMany(ctx, deviceID, changes)
	}
	return next, nil
}
