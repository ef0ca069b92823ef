// invaders is a Space Invaders clone for the terminal.
//
// Usage:
//
//	invaders                 - Play a round (same as "invaders play")
//	invaders play            - Play a round
//	invaders serve           - Start SSH server for remote play
//	invaders scores          - Show the stored best scores
//	invaders list            - List registered games
//	invaders config          - Print the default game config
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--store <path>        - Set high score store path
//	--store-kind <kind>   - Store backend: file or sqlite (default: file)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>     - Log destination (default: ~/.arcade/invaders.log)
//	--debug               - Enable debug logging
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagStorePath  string
	flagStoreKind  string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `Defend the ground against a descending alien formation.

Available commands:
  play     - Play a round (default)
  serve    - Start SSH server for remote play
  scores   - View stored best scores
  list     - Show registered games

Examples:
  invaders
  invaders play --difficulty hard
  invaders --store-kind sqlite scores
  invaders serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", "", "Path to high score store (default depends on --store-kind)")
	rootCmd.PersistentFlags().StringVar(&flagStoreKind, "store-kind", string(storage.KindFile), "High score store backend: file, sqlite")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/invaders.log", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger creates the file logger. The returned close function is never nil.
func newLogger(path string) (*log.Logger, func(), error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           logLevel(),
	})
	return logger, func() { _ = f.Close() }, nil
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// configureGame loads the game config, applies the difficulty preset and
// builds the sprite atlas. Any failure here is fatal for the caller.
func configureGame(logger *log.Logger) error {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyInvadersPreset(&cfg, preset)

	atlas, err := assets.Default(cfg.Colors)
	if err != nil {
		return err
	}
	if err := invaders.Configure(cfg, atlas); err != nil {
		return err
	}

	invaders.SetLogger(logger)
	logger.Debug("game configured", "difficulty", preset, "lives", cfg.Ship.Lives, "sprites", atlas.Len())
	return nil
}

// openStore opens the high score store selected by the global flags.
func openStore() (storage.HighScoreStore, error) {
	kind := storage.Kind(flagStoreKind)
	path := flagStorePath
	if path == "" {
		path = storage.DefaultPath(kind)
	}
	return storage.Open(kind, path)
}
