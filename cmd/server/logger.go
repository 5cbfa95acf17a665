package main

import (
	"fmt"
	"log/slog"

	"github.com/Cipollinka/MinSpiritCountdown/internal/config"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
)

// setupAppLogger configures the JSON logger from the server settings and
// logs the effective configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	l.Debug("Optional integrations",
		slog.Bool("nats_configured", cfg.Notify.NATSURL != ""),
		slog.Int("cors_origins", len(cfg.CORS.AllowedOrigins)))

	return l, nil
}
