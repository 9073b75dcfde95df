// internal/tui/progress.go
// Package tui renders a live progress view for long-running bench suites.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type stepMsg string

type doneMsg struct{}

// progressModel is the Bubble Tea model behind the spinner view.
type progressModel struct {
	spinner spinner.Model
	step    string
	done    bool
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return progressModel{spinner: s, step: "starting"}
}

// Init starts the spinner ticking.
func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner and reacts to step and completion messages.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.step = string(msg)
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the spinner next to the current measurement label.
func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + stepStyle.Render(" measuring: "+m.step) + "\n"
}

// RunWithProgress executes run under a live spinner view. The callback
// passed to run publishes the current step label. The run's error is
// returned once the view has shut down.
func RunWithProgress(run func(onStep func(string)) error) error {
	program := tea.NewProgram(newProgressModel())

	errCh := make(chan error, 1)
	go func() {
		err := run(func(step string) {
			program.Send(stepMsg(step))
		})
		errCh <- err
		program.Send(doneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	return <-errCh
}
