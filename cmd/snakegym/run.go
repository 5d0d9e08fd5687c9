package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/registry"
	"github.com/vovakirdan/snake-gym/internal/rollout"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var (
	flagEnv      string
	flagEpisodes int
	flagMaxSteps int
	flagDelay    time.Duration
	flagRender   string
	flagAgent    string
	flagNoRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Roll out an agent for a number of episodes",
	Long: `Run episodes of an environment with a built-in agent.

Each episode resets the env and steps it until the snake dies or
--max-steps is reached. Finished episodes are logged and recorded
in the episodes database.

Render modes:
  none   - Headless, fastest
  ascii  - Print each frame as text (O head, o body, * fruit)
  human  - Redraw each frame in place with coloured blocks

Agents:
  random - Uniform sample from the action space
  greedy - Heads for the nearest fruit, avoids immediate death

Examples:
  snakegym run
  snakegym run --episodes 100 --render none --seed 7
  snakegym run --agent greedy --delay 50ms
  snakegym run --render ascii --max-steps 20`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagEnv, "env", "", "Environment ID (default from config)")
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes (default from config)")
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step limit per episode (default from config)")
	runCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Delay between steps, e.g. 100ms (default from config)")
	runCmd.Flags().StringVar(&flagRender, "render", "", "Render mode: none, ascii, human")
	runCmd.Flags().StringVar(&flagAgent, "agent", "", "Agent: random, greedy")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save episodes to the database")
}

// applyRunFlags overrides config values with explicitly set run flags.
func applyRunFlags(cmd *cobra.Command, cfg *config.RunConfig) error {
	if flagEnv != "" {
		cfg.Env = flagEnv
	}
	if flagEpisodes > 0 {
		cfg.Episodes = flagEpisodes
	}
	if flagMaxSteps > 0 {
		cfg.MaxSteps = flagMaxSteps
	}
	if cmd.Flags().Changed("delay") {
		cfg.StepDelay = config.Duration(flagDelay)
	}
	if flagRender != "" {
		cfg.Render = config.RenderMode(flagRender)
	}
	if flagAgent != "" {
		cfg.Agent = config.AgentKind(flagAgent)
	}
	return cfg.Validate()
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := checkEnv(cfg.Env); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	env, err := registry.Create(cfg.Env)
	if err != nil {
		return fmt.Errorf("creating env: %w", err)
	}
	defer env.Close()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	render := cfg.Render
	if render == config.RenderHuman && !isTTY {
		logger.Warn("stdout is not a terminal, falling back to ascii rendering")
		render = config.RenderASCII
	}

	switch render {
	case config.RenderHuman:
		env.SetViewerFactory(func() (core.Viewer, error) {
			return tui.NewTerminalViewer(os.Stdout, env.Title()+" "+env.ID()), nil
		})
	case config.RenderASCII:
		env.SetViewerFactory(func() (core.Viewer, error) {
			return tui.NewASCIIViewer(os.Stdout, env.ID(), isTTY), nil
		})
	}

	// Open episode storage
	var (
		recorder rollout.Recorder
		prevBest float64
		hadBest  bool
	)
	if !flagNoRecord {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open episodes database", "error", err)
		} else {
			defer store.Close()
			recorder = store
			if prevBest, hadBest, err = store.BestReturn(cfg.Env); err != nil {
				logger.Warn("could not read best return", "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := rollout.NewRunner(env, rollout.NewAgent(cfg.Agent), rollout.Config{
		Episodes:  cfg.Episodes,
		MaxSteps:  cfg.MaxSteps,
		StepDelay: cfg.StepDelay.Std(),
		Seed:      cfg.Seed,
		Render:    render != config.RenderNone,
	}, recorder, logger)

	results, err := runner.Run(ctx)
	if err != nil && !rollout.IsCancelled(err) {
		return err
	}

	printSummary(logger, runner.RunID(), results)
	if recorder != nil {
		reportNewBest(logger, prevBest, hadBest, results)
	}
	return nil
}

// printSummary logs aggregate results for the run.
func printSummary(logger *log.Logger, runID string, results []rollout.EpisodeResult) {
	if len(results) == 0 {
		logger.Info("no episodes finished")
		return
	}

	var total float64
	best := results[0].TotalReward
	fruit := 0
	for _, r := range results {
		total += r.TotalReward
		best = max(best, r.TotalReward)
		fruit += r.FruitEaten
	}

	logger.Info("run finished",
		"run", runID,
		"seed", results[0].Seed,
		"episodes", len(results),
		"mean_return", total/float64(len(results)),
		"best_return", best,
		"fruit", fruit,
	)
	logger.Infof("replay with --seed %d, list episodes with 'snakegym scores --run %s'", results[0].Seed, runID)
}

// reportNewBest logs when the run beat the best return recorded before it.
func reportNewBest(logger *log.Logger, prev float64, hadPrev bool, results []rollout.EpisodeResult) {
	if len(results) == 0 {
		return
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.TotalReward > best.TotalReward {
			best = r
		}
	}
	if hadPrev && best.TotalReward <= prev {
		return
	}
	logger.Info("new best return", "return", best.TotalReward, "episode", best.Episode, "previous", prev)
}
