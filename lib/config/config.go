// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Hearth
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - the HEARTH_CONFIG environment variable, or
//   - the --config flag passed to the command.
//
// There are no fallbacks or automatic discovery. This keeps the
// client's target environment deterministic — no hidden overrides
// deciding which backend a mutation lands on.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when the configured
// environment matches.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "HEARTH_CONFIG"

// Environment identifies which backend deployment the client talks to.
type Environment string

const (
	// Development is a local backend.
	Development Environment = "development"
	// Staging is the pre-production backend.
	Staging Environment = "staging"
	// Production is the live backend.
	Production Environment = "production"
)

// Config is the client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// API configures the backend connection.
	API APIConfig `yaml:"api"`

	// Session configures token persistence between CLI invocations.
	Session SessionConfig `yaml:"session"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the API root (e.g., "https://api.hearth.example/api").
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request. Zero means 30s.
	Timeout time.Duration `yaml:"timeout"`
}

// SessionConfig configures local session persistence.
type SessionConfig struct {
	// TokenFile is where the CLI stores the bearer token and
	// principal between invocations. Empty disables persistence —
	// every invocation must log in.
	TokenFile string `yaml:"token_file"`
}

// Overrides contains the fields that can be overridden per
// environment.
type Overrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Session *SessionConfig `yaml:"session,omitempty"`
}

// Load reads and validates the config file at path. If path is empty,
// the HEARTH_CONFIG environment variable is consulted; if that is
// also empty, Load fails — there is no default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return nil, fmt.Errorf("config: no config file: set %s or pass --config", EnvVar)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyOverrides()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != 0 {
			c.API.Timeout = overrides.API.Timeout
		}
	}
	if overrides.Session != nil {
		if overrides.Session.TokenFile != "" {
			c.Session.TokenFile = overrides.Session.TokenFile
		}
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	case "":
		return fmt.Errorf("environment is required")
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	return nil
}
