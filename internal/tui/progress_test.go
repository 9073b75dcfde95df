package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgressModelTracksSteps(t *testing.T) {
	m := newProgressModel()

	updated, _ := m.Update(stepMsg("binary size"))
	pm := updated.(progressModel)
	if pm.step != "binary size" {
		t.Fatalf("step: %q", pm.step)
	}
	if !strings.Contains(pm.View(), "binary size") {
		t.Fatalf("view: %q", pm.View())
	}
}

func TestProgressModelQuitsOnDone(t *testing.T) {
	m := newProgressModel()

	updated, cmd := m.Update(doneMsg{})
	pm := updated.(progressModel)
	if !pm.done {
		t.Fatal("expected done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if pm.View() != "" {
		t.Fatalf("done view must be empty, got %q", pm.View())
	}
}

func TestProgressModelQuitsOnCtrlC(t *testing.T) {
	m := newProgressModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	pm := updated.(progressModel)
	if !pm.done || cmd == nil {
		t.Fatalf("ctrl+c must quit: done=%v cmd=%v", pm.done, cmd)
	}
}
