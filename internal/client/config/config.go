package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the server root including the global prefix.
	APIURL   string `env:"CLUB_API_URL,   default=http://localhost:4000/api"`
	DBPath   string `env:"CLUB_CLIENT_DB, default=club.db"`
	LogLevel string `env:"LOG_LEVEL,      default=info"`
}

// Load reads client configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
