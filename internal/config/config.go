// Package config loads run configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/germwalk/internal/logging"
	"github.com/aretw0/germwalk/pkg/domain"
)

// Store kinds.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the full run configuration.
type Config struct {
	Graph            string        `yaml:"graph"`
	Steps            int           `yaml:"steps"`
	Agents           int           `yaml:"agents"`
	Seed             *int64        `yaml:"seed"`
	LargestComponent bool          `yaml:"largest_component"`
	Output           string        `yaml:"output"`
	Log              LogConfig     `yaml:"log"`
	Store            StoreConfig   `yaml:"store"`
	Metrics          MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects and addresses the trajectory store.
type StoreConfig struct {
	Kind     string        `yaml:"kind"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Path     string        `yaml:"path"`
	TTL      time.Duration `yaml:"ttl"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration of the reference run: 150 ticks,
// 30 agents, seed 42.
func Default() Config {
	seed := int64(42)
	return Config{
		Steps:  150,
		Agents: 30,
		Seed:   &seed,
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Store: StoreConfig{
			Kind: StoreNone,
			Addr: "localhost:6379",
			Path: "germwalk.db",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Steps <= 0 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", c.Steps))
	}
	if c.Agents <= 0 {
		errs = append(errs, fmt.Errorf("agents must be positive, got %d", c.Agents))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch logging.Format(strings.ToLower(c.Log.Format)) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	switch c.Store.Kind {
	case StoreNone, StoreMemory, "":
	case StoreRedis:
		if c.Store.Addr == "" {
			errs = append(errs, errors.New("store.addr is required for redis"))
		}
	case StoreSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, fmt.Errorf("store.ttl must not be negative, got %s", c.Store.TTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
