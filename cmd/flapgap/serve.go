package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgap/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flapgap SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own menu and sessions and plays as its SSH
user name. Lives, coins and the leaderboard are shared through the
database, so point --db at PostgreSQL when running several servers.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flapgap/host_key

Examples:
  flapgap serve                                   # Listen on :23234
  flapgap serve --ssh :2222                       # Listen on port 2222
  flapgap serve --host-key ./my_host_key          # Use specific host key
  flapgap serve --db postgres://localhost/flapgap # Shared database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	env, cleanup, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, env)
	if err != nil {
		return err
	}

	fmt.Printf("Starting flapgap SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
