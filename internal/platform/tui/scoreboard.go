package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best score of every game in a store.
type ScoreboardModel struct {
	scores   []storage.BestScore
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over already loaded scores.
func NewScoreboardModel(scores []storage.BestScore, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		scores: scores,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 18},
		{Title: "Best", Width: 8},
		{Title: "Updated", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// ScoreRows formats best scores as table rows. Registered games show their
// title instead of the ID.
func ScoreRows(scores []storage.BestScore) []table.Row {
	titles := make(map[string]string)
	for _, g := range registry.List() {
		titles[g.ID] = g.Title
	}

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		name := s.GameID
		if title, ok := titles[s.GameID]; ok {
			name = title
		}
		updated := "-"
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{name, fmt.Sprintf("%d", s.Score), updated}
	}
	return rows
}

func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(ScoreRows(m.scores))
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("HIGH SCORES"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No scores recorded yet.")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunScoreboard shows the scoreboard until the user quits.
func RunScoreboard(scores []storage.BestScore, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(scores, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
