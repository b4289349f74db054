package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "ATTENDANCE_"

type Config struct {
	Store struct {
		Backend    string `env:"BACKEND" envDefault:"json" validate:"oneof=json sqlite"`
		RosterPath string `env:"ROSTER_PATH" envDefault:"employees.json" validate:"required"`
		LedgerPath string `env:"LEDGER_PATH" envDefault:"attendance.json" validate:"required"`
		SQLitePath string `env:"SQLITE_PATH" envDefault:"attendance.db" validate:"required"`
		StrictLoad bool   `env:"STRICT_LOAD" envDefault:"false"`
	} `envPrefix:"STORE_"`
	Export struct {
		Dir string `env:"DIR" envDefault:"." validate:"required"`
	} `envPrefix:"EXPORT_"`
	Log struct {
		Level  string `env:"LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
		Format string `env:"FORMAT" envDefault:"text" validate:"oneof=text json"`
	} `envPrefix:"LOG_"`
}

// EnvFile returns the .env path to read: ATTENDANCE_ENV_FILE or ".env".
func EnvFile() string {
	if p := os.Getenv(Prefix + "ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// LoadConfig reads envFile if it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// first error only, keeps the message readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps Log.Level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
