package config

import "time"

// Config holds the server configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Countdown CountdownConfig `mapstructure:"countdown" validate:"required"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects and configures the key-value backend.
type DatabaseConfig struct {
	// Driver is postgres, sqlite or memory.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres"`
	Path   string `mapstructure:"path" validate:"required_if=Driver sqlite"`
}

// AuthConfig contains the device session token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CountdownConfig tunes the countdown runner.
type CountdownConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
	StreamBuffer int           `mapstructure:"stream_buffer" validate:"gte=0"`
}

// NotifyConfig configures signal delivery. An empty NATSURL logs signals
// instead of publishing them.
type NotifyConfig struct {
	NATSURL       string `mapstructure:"nats_url" validate:"omitempty,url"`
	SubjectPrefix string `mapstructure:"subject_prefix" validate:"required_with=NATSURL"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CLIConfig holds the settings of the minspirit command line tool.
type CLIConfig struct {
	DeviceID     string `mapstructure:"device_id" validate:"required"`
	DatabasePath string `mapstructure:"database_path" validate:"required"`
	LogLevel     string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}
