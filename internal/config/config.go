package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	JWTSecret    string
	FrontendDir  string
	// SweepSchedule is the cron expression for the restriction expiry sweep.
	SweepSchedule string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Environment:   getEnv("PORTEIRO_ENV", "development"),
		HTTPPort:      getEnv("PORTEIRO_HTTP_PORT", "8080"),
		DatabasePath:  getEnv("PORTEIRO_DB_PATH", filepath.Join("data", "porteiro.db")),
		JWTSecret:     getEnv("PORTEIRO_JWT_SECRET", "dev-secret-change-me"),
		FrontendDir:   getEnv("PORTEIRO_FRONTEND_DIR", filepath.Clean(filepath.Join("..", "frontend", "dist"))),
		SweepSchedule: getEnv("PORTEIRO_SWEEP_SCHEDULE", "@every 5m"),
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
