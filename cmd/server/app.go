package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/config"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/notify"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service/auth"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	"github.com/jonboulle/clockwork"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	clock  clockwork.Clock

	devices store.DeviceStore

	jwtService  auth.JWTService
	timers      service.TimerService
	meditations service.MeditationService
	predictions service.PredictionService
	settings    service.SettingsService
	profiles    service.ProfileService

	// Event system
	eventEmitter *events.InMemoryEventEmitter
	hub          *events.Hub
	trigger      notify.Trigger
	natsTrigger  *notify.NATSTrigger

	runner   *runner.Runner
	sessions *runner.Sessions
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	devices, err := setupDeviceStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up device store: %w", err)
	}
	return newApplicationWithStore(cfg, logger, devices, clockwork.NewRealClock())
}

// newApplicationWithStore wires the services around an already opened store.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	devices store.DeviceStore,
	clock clockwork.Clock,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		clock:   clock,
		devices: devices,
	}

	var err error
	app.jwtService, err = auth.NewJWTServiceWithClock(cfg.Auth, clock)
	if err != nil {
		return nil, app.fail(fmt.Errorf("failed to initialize JWT service: %w", err))
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	if app.timers, err = service.NewTimerService(devices, logger); err != nil {
		return nil, app.fail(fmt.Errorf("failed to create timer service: %w", err))
	}
	if app.meditations, err = service.NewMeditationService(devices, logger); err != nil {
		return nil, app.fail(fmt.Errorf("failed to create meditation service: %w", err))
	}
	if app.predictions, err = service.NewPredictionService(devices, nil, logger); err != nil {
		return nil, app.fail(fmt.Errorf("failed to create prediction service: %w", err))
	}
	if app.settings, err = service.NewSettingsService(devices, logger); err != nil {
		return nil, app.fail(fmt.Errorf("failed to create settings service: %w", err))
	}
	if app.profiles, err = service.NewProfileService(devices, logger); err != nil {
		return nil, app.fail(fmt.Errorf("failed to create profile service: %w", err))
	}

	if err := app.setupEvents(); err != nil {
		return nil, app.fail(err)
	}

	app.runner, err = runner.NewRunner(clock, app.eventEmitter, app.timers, runner.RunnerConfig{
		TickInterval: cfg.Countdown.TickInterval,
	}, logger)
	if err != nil {
		return nil, app.fail(fmt.Errorf("failed to create countdown runner: %w", err))
	}
	app.sessions = &runner.Sessions{
		Runner:      app.runner,
		Timers:      app.timers,
		Meditations: app.meditations,
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupEvents builds the emitter and registers the websocket hub and the
// signal handler on it.
func (app *application) setupEvents() error {
	app.eventEmitter = events.NewInMemoryEventEmitter(app.logger)
	app.hub = events.NewHub(app.config.Countdown.StreamBuffer, app.logger)
	app.eventEmitter.RegisterHandler(app.hub)

	triggers := notify.Multi{notify.NewLogTrigger(app.logger)}
	if url := app.config.Notify.NATSURL; url != "" {
		natsCfg := notify.DefaultNATSConfig()
		natsCfg.URL = url
		natsCfg.SubjectPrefix = app.config.Notify.SubjectPrefix

		nt, err := notify.ConnectNATS(natsCfg, app.logger)
		if err != nil {
			return fmt.Errorf("failed to connect signal publisher: %w", err)
		}
		app.natsTrigger = nt
		triggers = append(triggers, nt)
		app.logger.Info("Publishing countdown signals to NATS",
			slog.String("subject_prefix", natsCfg.SubjectPrefix))
	}
	app.trigger = triggers

	signals, err := service.NewSignalHandler(app.settings, app.trigger, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create signal handler: %w", err)
	}
	app.eventEmitter.RegisterHandler(signals)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// fail releases what was opened so far and returns err.
func (app *application) fail(err error) error {
	app.cleanup()
	return err
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.runner != nil {
		app.runner.Shutdown()
	}

	if app.natsTrigger != nil {
		if err := app.natsTrigger.Close(); err != nil {
			app.logger.Error("Error closing NATS connection", slog.String("error", err.Error()))
		}
	}

	if app.devices != nil {
		if err := app.devices.Close(); err != nil {
			app.logger.Error("Error closing device store", slog.String("error", err.Error()))
		}
	}
}
