// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and score persistence.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval converts a tick rate to the delay between ticks.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 30
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends one tick message after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
