package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if cfg.Seed != nil {
		t.Errorf("embedded defaults should leave the seed unset, got %d", *cfg.Seed)
	}
	if cfg != DefaultRunConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultRunConfig() %+v", cfg, DefaultRunConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
episodes: 5
step_delay: 0s
render: none
agent: greedy
seed: 7
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Episodes != 5 || cfg.Seed == nil || *cfg.Seed != 7 {
		t.Errorf("episodes/seed not loaded: %+v", cfg)
	}
	if cfg.Render != RenderNone || cfg.Agent != AgentGreedy {
		t.Errorf("render/agent not loaded: %+v", cfg)
	}
	if cfg.StepDelay.Std() != 0 {
		t.Errorf("StepDelay = %v, expected 0", cfg.StepDelay.Std())
	}

	// Unset keys keep their defaults
	if cfg.MaxSteps != 500 || cfg.Env != "Snake-v0" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.SSH.IdleTimeout.Std() != 30*time.Minute {
		t.Errorf("SSH idle timeout = %v, expected 30m", cfg.SSH.IdleTimeout.Std())
	}
}

func TestLoadSeedZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("seed: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Seed == nil || *cfg.Seed != 0 {
		t.Errorf("Seed = %v, want an explicit 0", cfg.Seed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("step_delay: soon\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for an unparsable duration")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("render: window\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load() should reject an unknown render mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"no env", func(c *RunConfig) { c.Env = "" }},
		{"zero episodes", func(c *RunConfig) { c.Episodes = 0 }},
		{"zero max steps", func(c *RunConfig) { c.MaxSteps = 0 }},
		{"negative delay", func(c *RunConfig) { c.StepDelay = Duration(-time.Second) }},
		{"unknown agent", func(c *RunConfig) { c.Agent = "dqn" }},
		{"unknown log level", func(c *RunConfig) { c.LogLevel = "trace" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() should fail for %s", tc.name)
			}
		})
	}
}

func TestDumpedConfigReloads(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Agent = AgentGreedy
	seed := int64(0)
	cfg.Seed = &seed

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of dumped config failed: %v\n%s", err, out)
	}
	if loaded.Seed == nil || *loaded.Seed != 0 {
		t.Errorf("Seed = %v, want an explicit 0", loaded.Seed)
	}
	loaded.Seed, cfg.Seed = nil, nil
	if loaded != cfg {
		t.Errorf("reloaded %+v, want %+v", loaded, cfg)
	}

	// An unset seed is left out of the dump
	unset, err := yaml.Marshal(DefaultRunConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if strings.Contains(string(unset), "seed:") {
		t.Errorf("unset seed should be omitted:\n%s", unset)
	}
}
