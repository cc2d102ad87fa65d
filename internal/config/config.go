// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config captures everything the server needs at startup.
type Config struct {
	// Addr is the address the HTTP server listens on.
	Addr string `env:"ADDR" env-default:":8080"`

	// DBPath is the path to the SQLite database file.
	DBPath string `env:"DB_PATH" env-default:"./data/placepin.db"`

	// JWTSecret signs session tokens. The default exists only so the
	// server boots in development; override it in any real deployment.
	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-change-in-production"`

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// LogFormat selects the slog handler: "text" (colored, for local
	// development) or "json" (for production).
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}
	return &cfg, nil
}
