package registry

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Error("registered game should exist")
	}
	if Exists("missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("Create() returned %q, expected stub_a", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
