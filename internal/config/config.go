// Package config loads the markov.yaml (or .json) settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/solver"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "markov.yaml"

// Config is the application configuration.
type Config struct {
	// Solver overrides problem defaults. A zero discount keeps the problem's own.
	Solver solver.Config `yaml:"solver" json:"solver" mapstructure:"solver"`
	Store  StoreConfig   `yaml:"store" json:"store" mapstructure:"store"`
	Log    LogConfig     `yaml:"log" json:"log" mapstructure:"log"`
	Server ServerConfig  `yaml:"server" json:"server" mapstructure:"server"`
}

// StoreConfig selects where solutions are persisted.
type StoreConfig struct {
	// Driver is "memory" or "redis".
	Driver string      `yaml:"driver" json:"driver" mapstructure:"driver"`
	Redis  RedisConfig `yaml:"redis" json:"redis" mapstructure:"redis"`
}

// RedisConfig holds the Redis solution store settings.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" json:"password" mapstructure:"password"`
	DB       int           `yaml:"db" json:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" mapstructure:"level"`
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" mapstructure:"addr"`
	// StateLimit bounds exploration of problems served over HTTP and MCP. Zero is unlimited.
	StateLimit int `yaml:"state_limit" json:"state_limit" mapstructure:"state_limit"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Solver: solver.Config{Tolerance: solver.DefaultTolerance},
		Store: StoreConfig{
			Driver: "memory",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "markov:solution:",
			},
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: ":8080", StateLimit: 1_000_000},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the settings that can be checked without a problem at hand.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown store driver %q", domain.ErrInvalidConfig, c.Store.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", domain.ErrInvalidConfig, c.Log.Format)
	}
	if c.Solver.Discount != 0 {
		if err := c.Solver.Validate(); err != nil {
			return err
		}
	}
	if c.Solver.Tolerance < 0 || c.Solver.MaxIterations < 0 || c.Server.StateLimit < 0 {
		return fmt.Errorf("%w: negative solver or server limit", domain.ErrInvalidConfig)
	}
	return nil
}
