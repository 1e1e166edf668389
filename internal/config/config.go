// Package config holds the run configuration, loadable from a YAML file with
// every field optional.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for a run.
const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 15
)

// Config holds all tunables of a verification run.
type Config struct {
	// Timeout is the per-request deadline. Each pair may need up to two
	// requests (HEAD plus fallback GET), each with its own deadline.
	Timeout time.Duration `yaml:"timeout"`

	// Workers bounds how many pairs are checked concurrently (default 15).
	Workers int `yaml:"workers"`

	// RateLimit caps started checks per second, 0 = unlimited.
	RateLimit int `yaml:"rate_limit"`

	// UserAgent overrides the default Go user agent when non-empty.
	UserAgent string `yaml:"user_agent"`

	// Insecure skips TLS certificate verification.
	Insecure bool `yaml:"insecure"`

	// FollowMetaRefresh chases <meta http-equiv="refresh"> redirects on
	// fallback GETs.
	FollowMetaRefresh bool `yaml:"follow_meta_refresh"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout: DefaultTimeout,
		Workers: DefaultWorkers,
	}
}

// Load reads a YAML config file, overlaying it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration before any work begins.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", c.Timeout)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than zero (got %d)", c.Workers)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %d)", c.RateLimit)
	}
	return nil
}
