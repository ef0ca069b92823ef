package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var (
	flagFPS    int
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of Space Invaders in the current terminal.

Controls:
  Left/H, Right/L   - Move
  A, D              - Move fast
  Space/Up/W        - Fire
  P/Esc             - Pause
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, slower formation
  normal - Default settings
  hard   - Fewer lives, faster formation
  fixed  - No speed-up between levels

Examples:
  invaders play
  invaders play --difficulty easy
  invaders play --sound --volume 0.3
  invaders play --config ./my-invaders.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().IntVar(&flagFPS, "fps", 30, "Fallback tick rate (frames per second)")
		cmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound effects")
		cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0.0 - 1.0)")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	width, height := cfg.ScreenW, cfg.ScreenH
	if err := invaders.ValidateScreen(width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: terminal is %dx%d, need at least %dx%d\n",
			width, height, invaders.MinScreenWidth, invaders.MinScreenHeight)
		os.Exit(1)
	}

	if err := configureGame(logger); err != nil {
		logger.Error("cannot configure game", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(invaders.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Logger: logger}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open high score store: %v\n", err)
		logger.Warn("playing without high score store", "err", err)
	} else {
		opts.Store = store
	}

	var sound *audio.SoundManager
	if flagSound {
		sound = audio.NewSoundManager(flagVolume)
		if err := sound.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
			sound = nil
		} else {
			opts.Listener = sound
		}
	}

	logger.Info("starting round", "w", width, "h", height, "seed", flagSeed)

	runErr := tui.Run(game, cfg, opts)

	// Release resources before potential exit
	if sound != nil {
		sound.Cleanup()
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("cannot close high score store", "err", err)
		}
	}

	if runErr != nil {
		logger.Error("game exited with error", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
