// Package config loads frsh settings from FRSH_* environment variables.
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	level, err := cfg.Level()
package config

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "FRSH_"

// Config holds the settings shared by the CLI and test harnesses.
type Config struct {
	// Origin is the scheme://host[:port] partial fetches are resolved against.
	Origin string `env:"ORIGIN" envDefault:"http://localhost:8000"`

	// Manifest is the path of the YAML route manifest.
	Manifest string `env:"MANIFEST" envDefault:"routes.yaml"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the origin and log level.
func (c Config) Validate() error {
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid origin %q", c.Origin)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q", s)
	}

	return level, nil
}
