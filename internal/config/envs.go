package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvSeed       = "SNAKEGYM_SEED"
	EnvDBPath     = "SNAKEGYM_DB_PATH"
	EnvLogLevel   = "SNAKEGYM_LOG_LEVEL"
	EnvAgent      = "SNAKEGYM_AGENT"
	EnvRender     = "SNAKEGYM_RENDER"
	EnvSSHAddress = "SNAKEGYM_SSH_ADDRESS"
)

// LoadDotEnv loads variables from the given .env files (./.env when none
// are given). Variables already set in the environment win. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := files[:0]
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with any SNAKEGYM_* variables that are set.
func ApplyEnv(cfg *RunConfig) error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvSeed, err)
		}
		cfg.Seed = &seed
	}
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvAgent); ok {
		cfg.Agent = AgentKind(v)
	}
	if v, ok := os.LookupEnv(EnvRender); ok {
		cfg.Render = RenderMode(v)
	}
	if v, ok := os.LookupEnv(EnvSSHAddress); ok {
		cfg.SSH.Address = v
	}
	return nil
}
