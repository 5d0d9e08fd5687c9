package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-gym/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration the other commands would use, after the
config file, SNAKEGYM_* variables and global flags are applied.

With --defaults the embedded default run.yaml is printed instead; save
it to ~/.snakegym/configs/run.yaml or ./configs/run.yaml to customise.

Examples:
  snakegym config
  snakegym config --seed 7 --log-level debug
  snakegym config --defaults > configs/run.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
