// Package conf loads the daemon's configuration: an optional env-format
// file overlaid with process environment variables, plus programmatic
// overrides for CLI flags.
package conf

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Canonical option keys, named after the sections of the original ini-style
// configuration.
const (
	LogFilename = "logging.filename"
	LogLevel    = "logging.level"
	BindAddress = "tracker.bind_address"
)

// ErrMissing is returned by Get when a required option has no value.
var ErrMissing = errors.New("required option not set")

// envKeys maps process environment variables onto canonical option keys.
var envKeys = map[string]string{
	"UDPTD_LOG_FILE":  LogFilename,
	"UDPTD_LOG_LEVEL": LogLevel,
	"UDPTD_BIND_ADDR": BindAddress,
}

// Config is a string-keyed set of options.
type Config struct {
	options map[string]string
}

// New returns an empty Config.
func New() *Config {
	return &Config{options: make(map[string]string)}
}

// Load builds a Config from the environment. If path is non-empty, the env
// file at path is loaded first; variables already present in the process
// environment keep their value. Every recognized UDPTD_* variable is then
// copied onto its canonical key.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	c := New()
	for env, key := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			c.options[key] = v
		}
	}
	return c, nil
}

// Set assigns an option, replacing any value taken from the environment.
// Used by the CLI so flags win over the config file.
func (c *Config) Set(key, value string) {
	c.options[key] = value
}

// Get returns the value for key, or ErrMissing if it was never set.
func (c *Config) Get(key string) (string, error) {
	v, ok := c.options[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}
	return v, nil
}

// GetDefault returns the value for key, or fallback if it was never set.
func (c *Config) GetDefault(key, fallback string) string {
	if v, ok := c.options[key]; ok {
		return v
	}
	return fallback
}
