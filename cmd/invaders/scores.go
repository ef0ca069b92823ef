package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored best scores",
	Long: `Display the best score kept in the high score store.

When stdout is a terminal an interactive table is shown; otherwise the
scores are printed as plain text.

Examples:
  invaders scores
  invaders scores --store-kind sqlite
  invaders scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text even on a terminal")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening high score store: %v\n", err)
		os.Exit(1)
	}

	lister, ok := store.(storage.Lister)
	if !ok {
		_ = store.Close()
		fmt.Fprintf(os.Stderr, "Error: %s store cannot list scores\n", flagStoreKind)
		os.Exit(1)
	}

	scores, err := lister.BestScores()
	_ = store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(scores, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printScores(scores)
}

// printScores writes the scores as a plain table.
func printScores(scores []storage.BestScore) {
	titleStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(titleStyle.Render("High Scores"))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'invaders play' to set the first high score!")
		return
	}

	fmt.Printf("  %-20s  %-10s  %s\n", "Game", "Best", "Updated")
	fmt.Printf("  %-20s  %-10s  %s\n", "----", "----", "-------")
	for _, row := range tui.ScoreRows(scores) {
		fmt.Printf("  %-20s  %-10s  %s\n", row[0], row[1], row[2])
	}
}
