// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds every setting the server reads at startup
type Config struct {
	DatabaseURL        string        `env:"DATABASE_URL"`
	Port               string        `env:"APPVIEW_PORT" env-default:"8081"`
	StorageDriver      string        `env:"STORAGE_DRIVER" env-default:"postgres"`
	JWTSecret          string        `env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer          string        `env:"AUTH_JWT_ISSUER"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
	OTLPEndpoint       string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName        string        `env:"OTEL_SERVICE_NAME" env-default:"postboard"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS" env-default:"100"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	TrustProxyHeaders  bool          `env:"TRUST_PROXY_HEADERS" env-default:"false"`
	MutationRetries    int           `env:"MUTATION_RETRIES" env-default:"5"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" env-default:"5s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	if c.JWTSecret == "" {
		return fmt.Errorf("config error: AUTH_JWT_SECRET is required")
	}

	switch c.StorageDriver {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: DATABASE_URL is required for the postgres storage driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config error: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("config error: RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("config error: RATE_LIMIT_WINDOW must be positive")
	}
	if c.MutationRetries <= 0 {
		return fmt.Errorf("config error: MUTATION_RETRIES must be positive")
	}

	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
