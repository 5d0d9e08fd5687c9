// Package config provides YAML-based driver configuration for snakegym.
// It covers how episodes are run and displayed; the environment itself
// has fixed rules and is not configurable.
package config

import (
	"fmt"
	"time"
)

// RenderMode selects the display sink used while running episodes.
type RenderMode string

const (
	RenderNone  RenderMode = "none"
	RenderASCII RenderMode = "ascii"
	RenderHuman RenderMode = "human"
)

// AgentKind selects the policy driving the snake.
type AgentKind string

const (
	AgentRandom AgentKind = "random"
	AgentGreedy AgentKind = "greedy"
)

// RunConfig contains all driver configuration.
type RunConfig struct {
	Env       string     `yaml:"env"`
	Episodes  int        `yaml:"episodes"`
	MaxSteps  int        `yaml:"max_steps"`
	StepDelay Duration   `yaml:"step_delay"`
	Seed      *int64     `yaml:"seed,omitempty"` // nil picks a clock seed
	Render    RenderMode `yaml:"render"`
	Agent     AgentKind  `yaml:"agent"`
	LogLevel  string     `yaml:"log_level"`
	DBPath    string     `yaml:"db_path"`
	SSH       SSHConfig  `yaml:"ssh"`
}

// SSHConfig defines the spectator server settings.
type SSHConfig struct {
	Address     string   `yaml:"address"`
	HostKey     string   `yaml:"host_key"`
	IdleTimeout Duration `yaml:"idle_timeout"`
}

// Duration is a time.Duration that unmarshals from strings like "100ms".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Validate checks that the configuration is usable.
func (c RunConfig) Validate() error {
	if c.Env == "" {
		return fmt.Errorf("config: env must be set")
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("config: episodes must be positive, got %d", c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("config: max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("config: step_delay must not be negative")
	}
	switch c.Render {
	case RenderNone, RenderASCII, RenderHuman:
	default:
		return fmt.Errorf("config: unknown render mode %q", c.Render)
	}
	switch c.Agent {
	case AgentRandom, AgentGreedy:
	default:
		return fmt.Errorf("config: unknown agent %q", c.Agent)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
