// Package config loads and validates application configuration from JSON
// or YAML files. Absent fields fall back to defaults that work against a
// local NATS server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360/sparqlpath/engine"
	"github.com/c360/sparqlpath/errors"
)

// Config is the top-level application configuration
type Config struct {
	// NATS configures the connection to the query responder
	NATS NATSConfig `json:"nats" yaml:"nats"`

	// Engine configures query execution
	Engine engine.Config `json:"engine" yaml:"engine"`

	// Logging configures the slog handler
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// ContextFile points at a JSON-LD context used to resolve property names
	ContextFile string `json:"context_file" yaml:"context_file"`
}

// NATSConfig holds connection settings
type NATSConfig struct {
	URL           string        `json:"url" yaml:"url"`
	Name          string        `json:"name" yaml:"name"`
	MaxReconnects int           `json:"max_reconnects" yaml:"max_reconnects"`
	ReconnectWait time.Duration `json:"reconnect_wait" yaml:"reconnect_wait"`
}

// LoggingConfig holds slog handler settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level" yaml:"level"`

	// Format is either text or json
	Format string `json:"format" yaml:"format"`
}

// SetDefaults fills zero-valued fields with working defaults
func (c *Config) SetDefaults() {
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://localhost:4222"
	}
	if c.NATS.Name == "" {
		c.NATS.Name = "sparqlpath"
	}
	if c.NATS.MaxReconnects == 0 {
		c.NATS.MaxReconnects = 10
	}
	if c.NATS.ReconnectWait <= 0 {
		c.NATS.ReconnectWait = 2 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	c.Engine.SetDefaults()
}

// Validate checks the configuration for values defaults cannot repair
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: nats.url", errors.ErrMissingConfig),
			"config", "Validate", "NATS URL required")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: logging.level %q", errors.ErrInvalidConfig, c.Logging.Level),
			"config", "Validate", "unknown log level")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: logging.format %q", errors.ErrInvalidConfig, c.Logging.Format),
			"config", "Validate", "unknown log format")
	}

	if c.ContextFile != "" {
		if _, err := os.Stat(c.ContextFile); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("%w: context_file %q: %v", errors.ErrInvalidConfig, c.ContextFile, err),
				"config", "Validate", "context file not readable")
		}
	}

	return c.Engine.Validate()
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Load reads a configuration file, applies defaults and validates the
// result. The decoder is chosen by file extension: .json, .yaml or .yml.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "failed to read config file")
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "failed to parse JSON config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "failed to parse YAML config")
		}
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unsupported config extension %q", errors.ErrInvalidConfig, ext),
			"config", "Load", "unknown config format")
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
