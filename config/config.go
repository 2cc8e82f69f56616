package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Prefix is prepended to every environment variable, e.g. KEEPNOTES_PORT.
const Prefix = "KEEPNOTES"

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Environment string `envconfig:"ENV" default:"development"`
	Port        int    `envconfig:"PORT" default:"5002"`
	GinMode     string `envconfig:"GIN_MODE" default:"release"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver  string         `envconfig:"STORE_DRIVER" default:"mongo"`
	StoreTimeout time.Duration  `envconfig:"STORE_TIMEOUT" default:"10s"`
	Mongo        DatabaseConfig `envconfig:"MONGO"`

	RetentionDays int           `envconfig:"RETENTION_DAYS" default:"7"`
	SweepCron     string        `envconfig:"SWEEP_CRON" default:"0 0 * * *"`
	SweepTimeout  time.Duration `envconfig:"SWEEP_TIMEOUT" default:"1m"`

	RedisURL       string `envconfig:"REDIS_URL"`
	SessionCookie  string `envconfig:"SESSION_COOKIE" default:"connect.sid"`
	RequireSession bool   `envconfig:"REQUIRE_SESSION" default:"false"`

	CORSOrigin   string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.RetentionDays < 1 {
		return fmt.Errorf("RETENTION_DAYS must be at least 1, got %d", c.RetentionDays)
	}
	if _, err := cron.ParseStandard(c.SweepCron); err != nil {
		return fmt.Errorf("invalid SWEEP_CRON %q: %w", c.SweepCron, err)
	}
	if c.StoreTimeout <= 0 || c.SweepTimeout <= 0 {
		return errors.New("STORE_TIMEOUT and SWEEP_TIMEOUT must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	return nil
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
