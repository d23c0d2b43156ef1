package config

import "os"

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	StaticDir   string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by main) > default.
// The default DSN is a local sqlite file so the app runs with zero setup;
// point DATABASE_DSN at a postgres:// URL for the postgres backend.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "5000")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "solo_billing.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.StaticDir = getEnv("STATIC_DIR", "web")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
