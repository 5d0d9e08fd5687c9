package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/run.yaml
var defaultRunYAML []byte

// DefaultRunConfig returns the hard-coded driver configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Env:       "Snake-v0",
		Episodes:  1,
		MaxSteps:  500,
		StepDelay: Duration(100 * time.Millisecond),
		Render:    RenderHuman,
		Agent:     AgentRandom,
		LogLevel:  "info",
		DBPath:    "~/.snakegym/episodes.db",
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: Duration(30 * time.Minute),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunYAML
}
