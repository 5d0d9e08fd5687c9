package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagClear       bool
	flagInteractive bool
	flagRunID       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [env]",
	Short: "Show the best recorded episodes",
	Long: `Display the best episodes recorded for an environment, ranked by
return and then by fruit eaten.

Every 'snakegym run' prints a run ID; --run lists that run's episodes
in the order they were played.

Examples:
  snakegym scores
  snakegym scores Snake-v0 --limit 20
  snakegym scores --recent
  snakegym scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  snakegym scores -i
  snakegym scores Snake-v0 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent episodes across all envs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded episodes for the env")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse episodes in a TUI")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the episodes of one run, by run ID")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	envID := cfg.Env
	if len(args) > 0 {
		envID = args[0]
	}
	if err := checkEnv(envID); err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening episodes database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearEpisodes(envID); err != nil {
			return err
		}
		fmt.Printf("Cleared episodes for %s\n", envID)
		return nil

	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, envID, width, height)

	case flagRunID != "":
		episodes, err := store.RunEpisodes(flagRunID)
		if err != nil {
			return fmt.Errorf("retrieving run %s: %w", flagRunID, err)
		}
		fmt.Printf("Run %s\n", flagRunID)
		fmt.Println()
		if len(episodes) == 0 {
			fmt.Println("No episodes recorded for this run.")
			return nil
		}
		printEpisodes(episodes, false)
		return nil

	case flagRecent:
		episodes, err := store.RecentEpisodes(flagLimit)
		if err != nil {
			return fmt.Errorf("retrieving episodes: %w", err)
		}
		fmt.Println("Recent episodes")
		fmt.Println()
		printEpisodes(episodes, true)
		return nil

	default:
		return printTop(store, envID)
	}
}

// printTop prints the best episodes and summary stats for an env.
func printTop(store *storage.Store, envID string) error {
	episodes, err := store.TopEpisodes(envID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving episodes: %w", err)
	}

	fmt.Printf("Best episodes - %s\n", envID)
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snakegym run' or 'snakegym play' to record the first one!")
		return nil
	}

	printEpisodes(episodes, false)

	fmt.Println()
	if stats, err := store.Stats(envID); err == nil {
		fmt.Printf("Episodes: %d  Best: %.0f  Mean: %.2f  Mean steps: %.1f  Most fruit: %d\n",
			stats.Episodes, stats.BestReturn, stats.AvgReturn, stats.AvgSteps, stats.MostFruit)
	}
	return nil
}

// printEpisodes prints a plain table of episodes.
func printEpisodes(episodes []storage.EpisodeRecord, withEnv bool) {
	if withEnv {
		fmt.Printf("  %-4s  %-10s  %-7s  %-5s  %-5s  %-7s  %-9s  %s\n",
			"Rank", "Env", "Return", "Fruit", "Steps", "Agent", "End", "Date")
	} else {
		fmt.Printf("  %-4s  %-7s  %-5s  %-5s  %-7s  %-9s  %s\n",
			"Rank", "Return", "Fruit", "Steps", "Agent", "End", "Date")
	}

	for i, e := range episodes {
		date := e.CreatedAt.Format("2006-01-02 15:04")
		if withEnv {
			fmt.Printf("  %-4d  %-10s  %-7.0f  %-5d  %-5d  %-7s  %-9s  %s\n",
				i+1, e.EnvID, e.TotalReward, e.FruitEaten, e.Steps, e.Agent, e.EndReason, date)
		} else {
			fmt.Printf("  %-4d  %-7.0f  %-5d  %-5d  %-7s  %-9s  %s\n",
				i+1, e.TotalReward, e.FruitEaten, e.Steps, e.Agent, e.EndReason, date)
		}
	}
}
