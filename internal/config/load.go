package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "MINSPIRIT"

// Load reads the server configuration from environment variables and an
// optional config.yaml in the working directory.
// Environment variables take precedence over values from config files.
func Load() (*Config, error) {
	v := newViper("config")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "minspirit.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60*24*30)
	v.SetDefault("countdown.tick_interval", time.Second)
	v.SetDefault("countdown.stream_buffer", 64)
	v.SetDefault("notify.nats_url", "")
	v.SetDefault("notify.subject_prefix", "minspirit.signals")
	v.SetDefault("cors.allowed_origins", []string{})

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadCLI reads the command line tool configuration. The device id defaults to
// the host name and the database lives in the user config directory.
func LoadCLI() (*CLIConfig, error) {
	v := newViper("minspirit")
	v.AddConfigPath(defaultCLIDir())

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}

	v.SetDefault("device_id", host)
	v.SetDefault("database_path", filepath.Join(defaultCLIDir(), "minspirit.db"))
	v.SetDefault("log_level", "warn")

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(configName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func validate(cfg any) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func defaultCLIDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".minspirit"
	}
	return filepath.Join(dir, "minspirit")
}
