package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	LeftFast   key.Binding
	RightFast  key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.LeftFast, k.RightFast, k.Fire, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.LeftFast, k.RightFast},
		{k.Fire, k.Pause, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		LeftFast: key.NewBinding(
			key.WithKeys("a", "shift+left"),
			key.WithHelp("a", "fast left"),
		),
		RightFast: key.NewBinding(
			key.WithKeys("d", "shift+right"),
			key.WithHelp("d", "fast right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
// Returns ActionNone for unbound keys.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.LeftFast):
		return core.ActionLeftFast
	case key.Matches(msg, k.RightFast):
		return core.ActionRightFast
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}
