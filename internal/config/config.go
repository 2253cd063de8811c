package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevSecretKey signs sessions when LoadWithDefaults is used without SECRET_KEY.
const DevSecretKey = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig
	HTTP      HTTPConfig
	GRPC      GRPCConfig
	Auth      AuthConfig
	Uploads   UploadConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`           // "sqlite" or "postgres"
	DSN    string `env:"DB_URI" envDefault:"instance/blog.db"` // file path for sqlite, URL for postgres
}

// HTTPConfig contains web server settings.
type HTTPConfig struct {
	Address     string   `env:"HTTP_ADDRESS" envDefault:":5000"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `env:"GRPC_ADDRESS" envDefault:":50051"` // empty disables the maintainer API
}

// AuthConfig contains session settings.
type AuthConfig struct {
	SecretKey    string        `env:"SECRET_KEY"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// UploadConfig controls where post and editor images are written.
type UploadConfig struct {
	Dir       string `env:"UPLOAD_FOLDER" envDefault:"static/assets/img"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/static/assets/img"`
	MaxBytes  int64  `env:"MAX_UPLOAD_BYTES" envDefault:"8388608"`
}

// TelemetryConfig enables OTLP trace export.
type TelemetryConfig struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
	Enabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load reads configuration from the environment (and a .env file when
// present). SECRET_KEY is mandatory.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to DevSecretKey.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = DevSecretKey
	}
	return cfg, nil
}

func parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	dsn := c.Database.DSN
	if c.Database.Driver == "postgres" {
		dsn = "*** (masked) ***"
	}
	return fmt.Sprintf("Config{DB: %s %s, HTTP: %s, gRPC: %s, Uploads: %s, Auth: *** (masked) ***}",
		c.Database.Driver, dsn, c.HTTP.Address, c.GRPC.Address, c.Uploads.Dir)
}
