package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
	Uploads  UploadConfig
}

type DatabaseConfig struct {
	URL           string `env:"DATABASE_URL,   default=postgres://localhost:5432/guest_registry?sslmode=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR, default=migrations"`
	SeedsDir      string `env:"SEEDS_DIR,      default=seeds"`
}

// RedisConfig is optional: an empty Addr disables the token revocation list,
// in which case logout is client-side only.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type UploadConfig struct {
	Dir   string `env:"UPLOAD_DIR,    default=uploads"`
	MaxMB int64  `env:"MAX_UPLOAD_MB, default=5"`
}

// MaxBytes returns the upload size cap in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxMB << 20
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
