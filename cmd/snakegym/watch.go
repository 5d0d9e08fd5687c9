package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/rollout"
)

var flagWatchAgent string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an agent play in a TUI",
	Long: `Watch a built-in agent play episodes. Finished episodes are recorded
and a new one starts after R.

Examples:
  snakegym watch
  snakegym watch --agent greedy --seed 3`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchAgent, "agent", "", "Agent: random, greedy (default from config)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagWatchAgent != "" {
		cfg.Agent = config.AgentKind(flagWatchAgent)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// The model reseeds the agent from the env's seed
	agent := rollout.NewAgent(cfg.Agent)
	return runInteractive(cfg, agent, tui.TickRateFor(cfg.StepDelay.Std()), cfg.MaxSteps)
}
