// Package config loads service configuration from a YAML file with
// environment-variable overrides. A missing file yields the defaults, so
// the binary runs out of the box against the in-memory store.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
	Store    StoreConfig    `yaml:"store"`
}

// ServerConfig controls the HTTP listener and middleware.
type ServerConfig struct {
	Host               string   `yaml:"host"`
	Port               int      `yaml:"port"`
	CORSOrigins        []string `yaml:"cors_origins"`
	RateLimitPerSecond int      `yaml:"rate_limit_per_second"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
}

// DatabaseConfig controls the relational store. An empty DSN selects the
// in-memory store.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime_seconds"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SeedConfig controls startup seed loading. Path overrides the embedded
// dataset.
type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// StoreConfig tunes store behavior.
type StoreConfig struct {
	// EnforceReferences switches deletes to restrict mode. Default off:
	// deleting a referenced record leaves dangling foreign keys.
	EnforceReferences bool `yaml:"enforce_references"`
}

// DefaultPath is consulted when SERVER_CONFIG is unset.
const DefaultPath = "config/server.yaml"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSOrigins:        []string{"*"},
			RateLimitPerSecond: 50,
			RateLimitBurst:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Seed: SeedConfig{Enabled: true},
	}
}

// Load reads the config file named by SERVER_CONFIG (falling back to
// DefaultPath), then applies environment overrides. A missing file is not
// an error.
func Load() (*Config, error) {
	path := os.Getenv("SERVER_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// LoadFromPath reads a specific config file on top of the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SEED_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Seed.Enabled = enabled
		}
	}
	if v := os.Getenv("SEED_PATH"); v != "" {
		cfg.Seed.Path = v
	}
	if v := os.Getenv("STORE_ENFORCE_REFERENCES"); v != "" {
		if enforce, err := strconv.ParseBool(v); err == nil {
			cfg.Store.EnforceReferences = enforce
		}
	}
}
