package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/platform/tui"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeAgent  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH spectator server",
	Long: `Start an SSH server where every connection watches its own agent
play fresh episodes. Nothing is steered remotely; sessions only spectate.

Finished episodes are recorded in the server's episodes database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakegym/host_key

Examples:
  snakegym serve                           # Listen on the configured address
  snakegym serve --ssh :2222               # Listen on port 2222
  snakegym serve --agent greedy            # Sessions watch the greedy agent
  snakegym serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagServeAgent, "agent", "", "Agent: random, greedy (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = config.Duration(flagIdleTimeout)
	}
	if flagServeAgent != "" {
		cfg.Agent = config.AgentKind(flagServeAgent)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel).WithPrefix("snakegym-ssh")

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open episodes database", "error", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfigFrom(cfg), store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting snakegym SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
