package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvDBPath, "/tmp/x.db")
	t.Setenv(EnvAgent, "greedy")
	t.Setenv(EnvSSHAddress, ":2222")

	cfg := DefaultRunConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Seed == nil || *cfg.Seed != 99 {
		t.Errorf("Seed = %v, want 99", cfg.Seed)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("DBPath = %q, want /tmp/x.db", cfg.DBPath)
	}
	if cfg.Agent != AgentGreedy {
		t.Errorf("Agent = %q, want greedy", cfg.Agent)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH.Address = %q, want :2222", cfg.SSH.Address)
	}
	// Untouched values keep their defaults
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestApplyEnvSeedZero(t *testing.T) {
	t.Setenv(EnvSeed, "0")

	cfg := DefaultRunConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Seed == nil || *cfg.Seed != 0 {
		t.Errorf("Seed = %v, want an explicit 0", cfg.Seed)
	}
}

func TestApplyEnvBadSeed(t *testing.T) {
	t.Setenv(EnvSeed, "abc")

	cfg := DefaultRunConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() should reject a non-numeric seed")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SNAKEGYM_LOG_LEVEL=debug\nSNAKEGYM_RENDER=none\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Pre-set values take precedence over the file
	t.Setenv(EnvRender, "ascii")
	// Registers cleanup for the variable the file sets
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}

	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Errorf("%s = %q, want debug", EnvLogLevel, got)
	}
	if got := os.Getenv(EnvRender); got != "ascii" {
		t.Errorf("%s = %q, want ascii (env wins)", EnvRender, got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv() of a missing file should be a no-op, got %v", err)
	}
}
