package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in game configuration as YAML.

Save it to ~/.arcade/configs/invaders.yaml or ./configs/invaders.yaml and
edit it to change the defaults, or pass a copy with --config.

Examples:
  invaders config > ~/.arcade/configs/invaders.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.GetDefaultYAML(invaders.GameID)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: no default config for %q\n", invaders.GameID)
		os.Exit(1)
	}
	_, _ = os.Stdout.Write(data)
}
