// Package cli provides common CLI initialization utilities shared by the
// application entry point.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"noura/internal/config"
	"noura/internal/log"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
