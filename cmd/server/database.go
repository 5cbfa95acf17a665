package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/config"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/memory"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/postgres"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/sqlite"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

const connectTimeout = 5 * time.Second

var errMigrationsUnsupported = errors.New("migrations are only run explicitly for postgres")

// setupDeviceStore opens the key-value backend selected by the database driver.
// Postgres schemas are migrated on startup; SQLite migrates on open.
func setupDeviceStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.DeviceStore, error) {
	log := logger.With(slog.String("driver", cfg.Database.Driver))

	switch cfg.Database.Driver {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		db, err := postgres.Open(connectCtx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database connection established")
		return postgres.NewPostgresKVStore(db, logger), nil

	case "sqlite":
		kv, err := sqlite.Open(ctx, cfg.Database.Path, logger)
		if err != nil {
			return nil, err
		}
		log.Info("SQLite store opened", slog.String("path", cfg.Database.Path))
		return kv, nil

	case "memory":
		log.Warn("Using the in-memory store, device data is lost on restart")
		return memory.NewKVStore(), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// runMigrations applies the Postgres migrations without starting the server.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.Driver != "postgres" {
		return errMigrationsUnsupported
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := postgres.Open(connectCtx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Migrations applied")
	return nil
}
