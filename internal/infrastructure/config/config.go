package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

const EnvProduction = "production"

type Config struct {
	Port             string   `env:"PORT,                     default=5000"`
	Env              string   `env:"ENV,                      default=development"`
	LogLevel         string   `env:"LOG_LEVEL,                default=info"`
	JWTSecret        string   `env:"JWT_SECRET"`
	JWTExpiresIn     Duration `env:"JWT_EXPIRES_IN,           default=7d"`
	BcryptCost       int      `env:"BCRYPT_COST,              default=12"`
	AllowAdminSignup bool     `env:"AUTH_ALLOW_ADMIN_SIGNUP,  default=false"`
	CORSOrigins      []string `env:"CORS_ALLOWED_ORIGINS,     default=*"`
	StaticDir        string   `env:"STATIC_DIR,               default=public"`
	ShutdownTimeout  Duration `env:"SHUTDOWN_TIMEOUT,         default=10s"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=freefortalk"`
}

// IsProduction reports whether internal error detail must be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Validate returns a domain ConfigError for settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return domain.ConfigError("JWT_SECRET is not configured")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return domain.ConfigError(fmt.Sprintf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.JWTExpiresIn.Duration() <= 0 {
		return domain.ConfigError("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
