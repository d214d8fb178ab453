// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob of the portal API.
type Config struct {
	Addr string `env:"PORTAL_ADDR" envDefault:":8080"`

	// PGDSN selects the Postgres store. When empty the server falls back to
	// the in-memory store, which only suits local development.
	PGDSN string `env:"PORTAL_PG_DSN"`

	SessionSecret string        `env:"PORTAL_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"PORTAL_SESSION_TTL" envDefault:"12h"`

	UploadDir     string `env:"PORTAL_UPLOAD_DIR" envDefault:"uploads"`
	UploadBaseURL string `env:"PORTAL_UPLOAD_BASE_URL" envDefault:"/uploads"`

	RateBurst   int `env:"PORTAL_RATE_BURST" envDefault:"40"`
	RatePerSec  int `env:"PORTAL_RATE_PER_SEC" envDefault:"20"`
	LoginBurst  int `env:"PORTAL_LOGIN_BURST" envDefault:"5"`
	LoginPerSec int `env:"PORTAL_LOGIN_PER_SEC" envDefault:"1"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("PORTAL_SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("PORTAL_SESSION_SECRET must be at least 32 bytes")
	}
	if c.SessionTTL <= 0 {
		return errors.New("PORTAL_SESSION_TTL must be positive")
	}
	if c.RateBurst <= 0 || c.RatePerSec <= 0 {
		return errors.New("rate limit settings must be positive")
	}
	if c.LoginBurst <= 0 || c.LoginPerSec <= 0 {
		return errors.New("login rate limit settings must be positive")
	}
	return nil
}
