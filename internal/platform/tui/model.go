package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ChangeListener receives the draw list of every tick. The sound manager
// implements it.
type ChangeListener interface {
	HandleChanges(changes []core.Change)
}

// Options carries the optional collaborators of a Model.
type Options struct {
	Store    storage.HighScoreStore // Best score storage; nil disables persistence
	Listener ChangeListener         // Notified after each tick; nil to disable
	Logger   *log.Logger            // nil discards
	Renderer *lipgloss.Renderer     // nil uses the default renderer
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      storage.HighScoreStore
	listener   ChangeListener
	log        *log.Logger
	palette    Palette
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// The stored best score is loaded into cfg before the first Reset.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	palette := defaultPalette
	if opts.Renderer != nil {
		palette = NewPalette(opts.Renderer)
	}

	if opts.Store != nil {
		best, err := opts.Store.HighScore(game.ID())
		if err != nil {
			logger.Warn("cannot read high score", "game", game.ID(), "err", err)
		}
		cfg.HighScore = best
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		listener:   opts.Listener,
		log:        logger,
		palette:    palette,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(tickInterval(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. Screen dimensions are fixed
// for a round, so a resize restarts it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.config.HighScore = max(m.config.HighScore, m.gameState.HighScore)
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.log.Debug("window resized, round restarted", "w", msg.Width, "h", msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The game may keep the frame; ours is cleared below
	result := m.game.Step(m.inputFrame.Clone())
	m.gameState = result.State

	if m.listener != nil {
		if cr, ok := m.game.(registry.ChangeReporter); ok {
			m.listener.HandleChanges(cr.Changes())
		}
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveHighScore()
		m.scoreSaved = true
	} else if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	next := result.NextTick
	if next <= 0 {
		next = tickInterval(m.config.TickRate)
	}
	return m, tickCmd(next)
}

// saveHighScore offers the final score to the store. Store errors are logged
// and never stop the game.
func (m *Model) saveHighScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	updated, err := m.store.SetHighScore(m.game.ID(), m.gameState.Score)
	if err != nil {
		m.log.Error("cannot save high score", "game", m.game.ID(), "score", m.gameState.Score, "err", err)
		return
	}
	if updated {
		m.log.Info("new high score saved", "game", m.game.ID(), "score", m.gameState.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(screenshotText(m.screen)), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.log.Debug("screenshot saved", "path", path)
}

// screenshotText is the screen as plain text with trailing blanks trimmed
// from every row.
func screenshotText(s *core.Screen) string {
	var sb strings.Builder
	for y := range s.Height() {
		sb.WriteString(strings.TrimRight(s.Row(y), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// View renders the current state to a string for display.
// While paused, the key help replaces the bottom row.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := m.palette.Render(m.screen)
	if m.gameState.Paused {
		view = replaceLastLine(view, m.help.View(m.keys))
	}
	return view
}

// State returns the game state seen at the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
