// Package cli provides common initialization for the cashier command.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"cashier/internal/config"
	"cashier/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger initializes structured logging at the configured level and
// installs it as the process default.
func SetupLogger(cfg *config.Config) *log.Logger {
	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentApp)
	log.SetDefault(logger)
	return logger
}
