package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the tride settings taken from the environment
type Config struct {
	// DatabasePath overrides the default ~/.tride/tride.db store location
	DatabasePath string `env:"TRIDE_DB_PATH"`
	// Timezone is the reference timezone for date keys, "today" scoping and
	// weekly windows
	Timezone string `env:"TRIDE_TIMEZONE" envDefault:"UTC"`

	// Current actor, trusted as given; unset fields fall back to the OS user
	UserID    string `env:"TRIDE_USER_ID"`
	UserName  string `env:"TRIDE_USER_NAME"`
	UserEmail string `env:"TRIDE_USER_EMAIL"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"TRIDE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("environment variables are invalid: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TRIDE_TIMEZONE is invalid: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("TRIDE_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Location returns the parsed reference timezone
func (c *Config) Location() *time.Location {
	tz, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC // Validate catches this earlier
	}
	return tz
}
