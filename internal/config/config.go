// Package config provides configuration loading and management.
package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Default values.
const (
	DefaultRoot       = "."
	DefaultExtension  = ".js"
	DefaultMaxFetches = 4
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the capri configuration.
// Loaded from ~/.capri/config.yaml, validated against embedded CUE schema.
type Config struct {
	// Root is the directory module references resolve against.
	// Env: CAPRI_ROOT, Default: "."
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// Extension is appended to module references without one.
	// Env: CAPRI_EXTENSION, Default: ".js"
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`

	// Async loads modules through the asynchronous host.
	// Env: CAPRI_ASYNC
	Async bool `json:"async,omitempty" yaml:"async,omitempty"`

	// MaxFetches bounds concurrent fetches of the asynchronous host.
	// Env: CAPRI_MAX_FETCHES, Default: 4
	MaxFetches int `json:"maxFetches,omitempty" yaml:"maxFetches,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `capri config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Root:       DefaultRoot,
		Extension:  DefaultExtension,
		MaxFetches: DefaultMaxFetches,
	}
}

// WithDefaults returns a copy of c with unset fields taken from
// DefaultConfig.
func (c *Config) WithDefaults() (*Config, error) {
	out := &Config{}
	if c != nil {
		*out = *c
	}
	if err := mergo.Merge(out, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	return out, nil
}
