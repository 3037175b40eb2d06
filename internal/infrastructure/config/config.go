package config

import (
	"context"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port       string        `env:"PORT,        default=4000"`
	Env        string        `env:"ENV,         default=development"`
	APIPrefix  string        `env:"API_PREFIX,  default=api"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:3000"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=168h"`
	LoginDelay time.Duration `env:"LOGIN_DELAY, default=500ms"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`

	// CredentialStore selects the backing store: "memory" (Phase-1 seeded
	// table) or "mongo".
	CredentialStore string `env:"CREDENTIAL_STORE, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hockey_club"`
}

// RedisConfig is optional; an empty Addr disables token revocation.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CORSOrigins splits the comma-separated allow-list.
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSOrigin, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// Production reports whether the server runs with production hardening
// (JSON logs, no swagger UI).
func (c *Config) Production() bool {
	return c.Env == "production"
}
