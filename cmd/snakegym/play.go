package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/registry"
	"github.com/vovakirdan/snake-gym/internal/rollout"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var flagTickRate int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake from the keyboard",
	Long: `Steer the snake yourself. Turns are relative to the current heading,
exactly like the agent's actions.

Controls:
  Left/A     - Turn left
  Right/D    - Turn right
  Up/W       - Go straight
  P/Space    - Pause
  R          - Restart
  Q/Esc      - Quit

Examples:
  snakegym play
  snakegym play --fps 5
  snakegym play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagTickRate, "fps", 8, "Steps per second")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runInteractive(cfg, nil, flagTickRate, 0)
}

// runInteractive opens the env and runs the Bubble Tea model. A nil
// agent lets the user steer.
func runInteractive(cfg config.RunConfig, agent rollout.Agent, tickRate, maxSteps int) error {
	env, err := snakeEnv(cfg.Env)
	if err != nil {
		return err
	}
	defer env.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     cfg.Seed,
	}

	var opts []tui.ModelOption
	if maxSteps > 0 {
		opts = append(opts, tui.WithMaxSteps(maxSteps))
	}

	// Open episode storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open episodes database: %v\n", err)
		// Continue without storage - the env still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, tui.WithRecorder(store))
	}

	if err := tui.Run(tui.NewModel(env, agent, rc, opts...)); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// snakeEnv creates a registered env that the TUI can draw.
func snakeEnv(id string) (*snake.Env, error) {
	if err := checkEnv(id); err != nil {
		return nil, err
	}
	env, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	se, ok := env.(*snake.Env)
	if !ok {
		_ = env.Close()
		return nil, fmt.Errorf("env %q is not a Snake env", id)
	}
	return se, nil
}
