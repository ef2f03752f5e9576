package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	envConfig   = "TYPIST_CONFIG"
	envDB       = "TYPIST_DB"
	envSetsDir  = "TYPIST_SETS_DIR"
	envLogLevel = "TYPIST_LOG_LEVEL"
)

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	// A missing .env is the common case.
	_ = godotenv.Load()
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return envOr(envLogLevel, "info")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
