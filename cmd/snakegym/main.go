// snakegym runs the grid Snake reinforcement-learning environment from
// the terminal.
//
// Usage:
//
//	snakegym list              - List registered environments
//	snakegym run               - Roll out an agent for N episodes
//	snakegym play              - Steer the snake yourself
//	snakegym watch             - Watch an agent play in a TUI
//	snakegym serve             - Start SSH server for spectators
//	snakegym scores [env]      - Show the best recorded episodes
//	snakegym config            - Print the resolved configuration
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible episodes
//	--db <path>         - Set database path (default: ~/.snakegym/episodes.db)
//	--config <path>     - Load a custom run.yaml
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/registry"

	// Import envs to register them
	_ "github.com/vovakirdan/snake-gym/internal/envs/snake"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakegym",
	Short: "Snake - a grid Snake environment for reinforcement learning",
	Long: `snakegym hosts the Snake-v0 environment: a 40x40 grid snake steered
with relative turns (0 = left, 1 = straight, 2 = right) that returns a
200x200 RGB observation and a reward of +1 per fruit and -100 on death.

Available commands:
  list     - Show registered environments
  run      - Roll out an agent, headless or rendered
  play     - Play from the keyboard
  watch    - Watch an agent in a TUI
  serve    - Start SSH server for spectators
  scores   - View the best recorded episodes
  config   - Print the resolved configuration

Examples:
  snakegym list
  snakegym run --episodes 10 --render none --seed 42
  snakegym play
  snakegym watch --agent greedy
  snakegym serve --ssh :2222
  snakegym scores Snake-v0`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed; any value, 0 included, replays (default: clock seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to episodes database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom run config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the run config, then applies SNAKEGYM_* variables
// (from the environment or ./.env) and finally global flag overrides.
func loadConfig(cmd *cobra.Command) (config.RunConfig, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.RunConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = core.SeedOf(flagSeed)
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger creates the stderr logger at the configured level.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakegym",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// checkEnv reports an unknown environment ID.
func checkEnv(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown env %q (run 'snakegym list' to see available environments)", id)
	}
	return nil
}
