package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct {
	resets  int
	steps   int
	last    core.InputFrame
	state   core.GameState
	next    time.Duration
	runtime core.RuntimeConfig
	changes []core.Change
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.runtime = cfg
	g.state.HighScore = cfg.HighScore
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in
	return core.StepResult{State: g.state, NextTick: g.next}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState  { return g.state }
func (g *stubGame) Changes() []core.Change { return g.changes }

type memStore struct {
	best   int
	writes int
}

func (s *memStore) HighScore(string) (int, error) { return s.best, nil }

func (s *memStore) SetHighScore(_ string, score int) (bool, error) {
	s.writes++
	if score <= s.best {
		return false, nil
	}
	s.best = score
	return true, nil
}

func (s *memStore) Close() error { return nil }

type recordingListener struct {
	calls int
	seen  []core.Change
}

func (l *recordingListener) HandleChanges(changes []core.Change) {
	l.calls++
	l.seen = append(l.seen, changes...)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"fast left", runeKey("a"), core.ActionLeftFast},
		{"fast right", runeKey("d"), core.ActionRightFast},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"pause", runeKey("p"), core.ActionPause},
		{"quit", runeKey("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey("x"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestModelLoadsHighScore(t *testing.T) {
	game := &stubGame{}
	store := &memStore{best: 42}

	m := NewModel(game, testConfig(), Options{Store: store})
	m.Init()

	if game.runtime.HighScore != 42 {
		t.Errorf("HighScore passed to Reset = %d, expected 42", game.runtime.HighScore)
	}
}

func TestModelKeysReachNextTick(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, testConfig(), Options{})

	next, _ := m.Update(runeKey("a"))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	next, cmd := next.Update(TickMsg(time.Now()))

	// The model clears its own frame after the tick; the game's copy stays intact
	if !game.last.Has(core.ActionLeftFast) || !game.last.Has(core.ActionFire) {
		t.Error("tick should see both queued actions")
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	next.Update(TickMsg(time.Now()))
	if game.last.Has(core.ActionLeftFast) || game.last.Has(core.ActionFire) {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, testConfig(), Options{})

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	game := &stubGame{}
	store := &memStore{best: 5}
	m := NewModel(game, testConfig(), Options{Store: store})

	game.state = core.GameState{Score: 10, GameOver: true}
	var next tea.Model = m
	next, _ = next.Update(TickMsg(time.Now()))
	next, _ = next.Update(TickMsg(time.Now()))

	if store.writes != 1 || store.best != 10 {
		t.Errorf("writes = %d, best = %d, expected 1 and 10", store.writes, store.best)
	}

	// A new round ending lower is offered but does not replace the best
	game.state = core.GameState{Score: 3}
	next, _ = next.Update(TickMsg(time.Now()))
	game.state = core.GameState{Score: 3, GameOver: true}
	next.Update(TickMsg(time.Now()))

	if store.writes != 2 || store.best != 10 {
		t.Errorf("writes = %d, best = %d, expected 2 and 10", store.writes, store.best)
	}
}

func TestModelNotifiesListener(t *testing.T) {
	game := &stubGame{changes: []core.Change{{Op: core.OpCreated, Kind: core.EntityPlayerShot}}}
	listener := &recordingListener{}
	m := NewModel(game, testConfig(), Options{Listener: listener})

	m.Update(TickMsg(time.Now()))
	if listener.calls != 1 || len(listener.seen) != 1 {
		t.Errorf("listener calls = %d with %d changes, expected 1 and 1", listener.calls, len(listener.seen))
	}
}

func TestModelResizeRestartsRound(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, testConfig(), Options{})
	m.Init()

	// Same size is ignored
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if game.resets != 1 {
		t.Errorf("resets = %d, expected 1", game.resets)
	}

	game.state.HighScore = 30
	next.Update(TickMsg(time.Now()))
	next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if game.runtime.ScreenW != 100 || game.runtime.ScreenH != 30 {
		t.Errorf("runtime size = %dx%d, expected 100x30", game.runtime.ScreenW, game.runtime.ScreenH)
	}
}

func TestModelPausedShowsHelp(t *testing.T) {
	game := &stubGame{state: core.GameState{Paused: true}}
	m := NewModel(game, testConfig(), Options{Renderer: lipgloss.NewRenderer(io.Discard)})

	next, _ := m.Update(TickMsg(time.Now()))
	view := next.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("view has %d lines, expected 24", len(lines))
	}
	if !strings.Contains(lines[23], "fire") {
		t.Errorf("last line = %q, expected key help", lines[23])
	}
	if !strings.HasPrefix(lines[0], "stub") {
		t.Errorf("first line = %q, expected game output", lines[0])
	}
}

func TestPaletteRenderPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, '#', core.ColorBrightGreen)

	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	if got := p.Render(s); got != s.String() {
		t.Errorf("Render() = %q, expected %q", got, s.String())
	}
}

func TestReplaceLastLine(t *testing.T) {
	if got := replaceLastLine("a\nb\nc", "x"); got != "a\nb\nx" {
		t.Errorf("replaceLastLine() = %q, expected %q", got, "a\nb\nx")
	}
	if got := replaceLastLine("a", "x"); got != "x" {
		t.Errorf("replaceLastLine() = %q, expected %q", got, "x")
	}
}

func TestScreenshotTextTrimsRows(t *testing.T) {
	s := core.NewScreen(8, 3)
	s.DrawText(1, 0, "ab")
	s.DrawText(0, 2, "x")

	expected := " ab\n\nx\n"
	if got := screenshotText(s); got != expected {
		t.Errorf("screenshotText() = %q, expected %q", got, expected)
	}
}
