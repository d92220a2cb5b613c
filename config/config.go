// Package config loads the ambient plumbing around the core: where the
// store lives, how to reach the broker, and how to log. Per spec §6 the
// core itself consumes only two environment-shaped values — the store
// path and the broker credential identifier — everything else here is
// CLI-facing convenience that the core never reads directly.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree for the tradecli composition root.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Broker BrokerConfig `yaml:"broker"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig controls where the persistent store lives.
type StoreConfig struct {
	DSN string `yaml:"dsn"` // path to the SQLite file, or ":memory:"
}

// BrokerConfig controls how the broker adapter reaches the brokerage.
type BrokerConfig struct {
	BaseURL           string  `yaml:"base_url"`
	CredentialID      string  `yaml:"credential_id"` // keychain lookup key; the core never reads the secret itself
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	MaxRetries        int     `yaml:"max_retries"`
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads Config from a YAML file, then lets a .env file (if present)
// and environment variables override specific keys, then fills in
// defaults for anything still unset.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Timeout returns the broker request timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Broker.TimeoutSeconds) * time.Second
}

// applyEnvOverrides overwrites values with environment variables when present.
// TRADECORE_STORE_DSN and TRADECORE_BROKER_CREDENTIAL_ID are the two
// environment-shaped values §6 says the core's adapters actually consume.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADECORE_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TRADECORE_BROKER_CREDENTIAL_ID"); v != "" {
		cfg.Broker.CredentialID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults ensures required values carry sane defaults.
func setDefaults(cfg *Config) {
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "tradecore.db"
	}
	if cfg.Broker.RequestsPerSecond <= 0 {
		cfg.Broker.RequestsPerSecond = 5
	}
	if cfg.Broker.Burst <= 0 {
		cfg.Broker.Burst = 5
	}
	if cfg.Broker.TimeoutSeconds <= 0 {
		cfg.Broker.TimeoutSeconds = 10
	}
	if cfg.Broker.MaxRetries <= 0 {
		cfg.Broker.MaxRetries = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
