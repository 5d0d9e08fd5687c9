package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered environments",
	Long:  `Shows every environment in the registry with its observation and action spaces.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	envs := registry.List()

	if len(envs) == 0 {
		fmt.Println("No environments available.")
		return
	}

	fmt.Println("Available environments:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range envs {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %-13s  %s\n", maxIDLen, "ID", "Title", "Observation", "Actions")
	fmt.Printf("  %-*s  %-8s  %-13s  %s\n", maxIDLen, "--", "-----", "-----------", "-------")

	for _, info := range envs {
		env, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		shape := env.ObservationShape()
		fmt.Printf("  %-*s  %-8s  %-13s  Discrete(%d)\n",
			maxIDLen, info.ID, info.Title,
			fmt.Sprintf("%dx%dx%d", shape[0], shape[1], shape[2]),
			env.ActionSpace().N,
		)
		_ = env.Close()
	}

	fmt.Println()
	fmt.Println("Run 'snakegym run --env <id>' to roll out an agent.")
}
