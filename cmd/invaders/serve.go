package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the invaders SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own round. All sessions share one high
score store, which defaults to SQLite for the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  invaders serve                           # Listen on :23234 with auto-generated key
  invaders serve --ssh :2222               # Listen on port 2222
  invaders serve --host-key ./my_host_key  # Use specific host key
  invaders serve --store-kind file         # Share a plain score file

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders-ssh",
		Level:           logLevel(),
	})

	if err := configureGame(logger); err != nil {
		logger.Fatal("cannot configure game", "err", err)
	}

	if !cmd.Flag("store-kind").Changed {
		flagStoreKind = string(storage.KindSQLite)
	}
	store, err := openStore()
	if err != nil {
		logger.Warn("serving without high score store", "err", err)
		store = nil
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting invaders SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
