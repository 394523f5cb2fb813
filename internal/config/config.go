package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Local store
	DataDir string

	// Remote store (Firestore). Empty project ID means local-only mode,
	// which is fully supported, not an error.
	FirestoreProjectID    string
	FirestoreDatabaseID   string
	GoogleCredentialsFile string

	// Advice generator. Empty key disables the feature silently.
	GeminiAPIKey   string
	GeminiModel    string
	AdviceCacheTTL time.Duration

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DataDir: getEnv("DATA_DIR", "./data"),

		FirestoreProjectID:    getEnv("FIRESTORE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		FirestoreDatabaseID:   getEnv("FIRESTORE_DATABASE_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdviceCacheTTL: getEnvDuration("ADVICE_CACHE_TTL", 10*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data directory
	if c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty")
	} else {
		dir := filepath.Clean(c.DataDir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", dir, err))
			}
		}
	}

	// Validate credentials file if specified
	if c.GoogleCredentialsFile != "" {
		if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
		}
	}

	// A named database without a project is a configuration mistake
	if c.FirestoreDatabaseID != "" && c.FirestoreProjectID == "" {
		errors = append(errors, "FIRESTORE_DATABASE_ID is set but FIRESTORE_PROJECT_ID is missing")
	}

	// Validate log level
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Validate advice cache TTL
	if c.AdviceCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid advice cache TTL %v: must be at least 1 second", c.AdviceCacheTTL))
	} else if c.AdviceCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid advice cache TTL %v: must be at most 24 hours", c.AdviceCacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// RemoteConfigured reports whether a remote store is available to sign-in
// users. Absence is a supported mode, not a failure.
func (c *Config) RemoteConfigured() bool {
	return c.FirestoreProjectID != ""
}

// AdviceConfigured reports whether the advice generator can run. Absence
// hides the feature rather than failing.
func (c *Config) AdviceConfigured() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
