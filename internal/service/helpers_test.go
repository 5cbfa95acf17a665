package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/memory"
	"github.com/stretchr/testify/require"
)

const testDevice = "device-1"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// firstSource always picks the first available item.
type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

type testServices struct {
	store       *memory.KVStore
	timers      TimerService
	meditations MeditationService
	predictions PredictionService
	settings    SettingsService
	profiles    ProfileService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	s := memory.NewKVStore()
	log := discardLogger()

	timers, err := NewTimerService(s, log)
	require.NoError(t, err)
	meditations, err := NewMeditationService(s, log)
	require.NoError(t, err)
	predictions, err := NewPredictionService(s, firstSource{}, log)
	require.NoError(t, err)
	settings, err := NewSettingsService(s, log)
	require.NoError(t, err)
	profiles, err := NewProfileService(s, log)
	require.NoError(t, err)

	return testServices{
		store:       s,
		timers:      timers,
		meditations: meditations,
		predictions: predictions,
		settings:    settings,
		profiles:    profiles,
	}
}
