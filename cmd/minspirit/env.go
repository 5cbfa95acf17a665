package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/Cipollinka/MinSpiritCountdown/internal/config"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/draw"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/share"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/sqlite"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// env is what commands operate on: one device and its services.
type env struct {
	deviceID string
	logger   *slog.Logger
	clock    clockwork.Clock
	devices  store.DeviceStore
	sharer   share.Sharer

	timers      service.TimerService
	meditations service.MeditationService
	predictions service.PredictionService
	settings    service.SettingsService
	profiles    service.ProfileService
}

// openEnv loads the CLI configuration and opens the local SQLite store.
func openEnv(ctx context.Context, opts options) (*env, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}
	if opts.deviceID != "" {
		cfg.DeviceID = opts.deviceID
	}
	if opts.dbPath != "" {
		cfg.DatabasePath = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.LogLevel, Output: os.Stderr, Text: true})
	if err != nil {
		return nil, err
	}

	devices, err := sqlite.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		return nil, err
	}
	log.Debug("local store opened",
		slog.String("path", cfg.DatabasePath),
		slog.String("device_id", cfg.DeviceID))

	sharer := share.Fallback{
		Primary:   share.NewClipboardSharer(),
		Secondary: share.WriterSharer{W: os.Stdout},
	}
	return newEnv(cfg.DeviceID, devices, sharer, clockwork.NewRealClock(), nil, log)
}

// newEnv builds the services of deviceID over devices. A nil rng draws
// predictions from a time-seeded source.
func newEnv(
	deviceID string,
	devices store.DeviceStore,
	sharer share.Sharer,
	clock clockwork.Clock,
	rng draw.Source,
	log *slog.Logger,
) (*env, error) {
	e := &env{
		deviceID: deviceID,
		logger:   log,
		clock:    clock,
		devices:  devices,
		sharer:   sharer,
	}

	var err error
	if e.timers, err = service.NewTimerService(devices, log); err != nil {
		return nil, err
	}
	if e.meditations, err = service.NewMeditationService(devices, log); err != nil {
		return nil, err
	}
	if e.predictions, err = service.NewPredictionService(devices, rng, log); err != nil {
		return nil, err
	}
	if e.settings, err = service.NewSettingsService(devices, log); err != nil {
		return nil, err
	}
	if e.profiles, err = service.NewProfileService(devices, log); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *env) close() error {
	return e.devices.Close()
}
