// Package terminal is the bubbletea front end for the phase timer.
package terminal

import (
	"context"
	"strings"
	"time"

	"examtimer/internal/core/phasetimer"
	"examtimer/internal/ui/display"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	commandTimeout  = time.Second
	maxProgressWide = 60
)

// Controller forwards user actions to the timer.
type Controller interface {
	Dispatch(ctx context.Context, command phasetimer.Command) (bool, error)
	SelectMode(ctx context.Context, mode string) error
}

// MsgEvent carries a runner event into the program.
type MsgEvent struct {
	Event phasetimer.Event
}

// MsgEventsClosed is sent when the runner stops publishing.
type MsgEventsClosed struct{}

// MsgError reports a failed command.
type MsgError struct {
	Err error
}

// Model is the bubbletea model for the timer screen.
type Model struct {
	controller Controller
	events     <-chan phasetimer.Event
	modes      []string
	snapshot   phasetimer.Snapshot
	keys       KeyMap
	help       help.Model
	progress   progress.Model
	err        error
}

// NewModel creates the timer screen starting from snapshot.
func NewModel(controller Controller, events <-chan phasetimer.Event, modes []string, snapshot phasetimer.Snapshot) *Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return &Model{
		controller: controller,
		events:     events,
		modes:      append([]string(nil), modes...),
		snapshot:   snapshot,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		progress:   bar,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > maxProgressWide {
			width = maxProgressWide
		}
		if width > 0 {
			m.progress.Width = width
		}
		m.help.Width = msg.Width
		return m, nil
	case MsgEvent:
		m.snapshot = msg.Event.Snapshot
		m.err = nil
		next := waitForEvent(m.events)
		if msg.Event.Type == phasetimer.EventFinished {
			return m, tea.Batch(next, tea.Printf("\a%s", display.Status(m.snapshot)))
		}
		return m, next
	case MsgEventsClosed:
		return m, tea.Quit
	case MsgError:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	controls := phasetimer.ControlsFor(m.snapshot.State)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Primary):
		if !controls.PrimaryEnabled {
			return nil
		}
		return m.dispatch(phasetimer.CommandToggle)
	case key.Matches(msg, m.keys.Reset):
		if !controls.ResetEnabled {
			return nil
		}
		return m.dispatch(phasetimer.CommandReset)
	case key.Matches(msg, m.keys.NextMode):
		if !controls.ModeSelectionEnabled {
			return nil
		}
		return m.selectMode(m.shiftMode(1))
	case key.Matches(msg, m.keys.PrevMode):
		if !controls.ModeSelectionEnabled {
			return nil
		}
		return m.selectMode(m.shiftMode(-1))
	}
	return nil
}

func (m *Model) shiftMode(delta int) string {
	if len(m.modes) == 0 {
		return m.snapshot.Mode
	}
	current := 0
	for i, mode := range m.modes {
		if mode == m.snapshot.Mode {
			current = i
			break
		}
	}
	next := (current + delta + len(m.modes)) % len(m.modes)
	return m.modes[next]
}

func (m *Model) dispatch(command phasetimer.Command) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if _, err := controller.Dispatch(ctx, command); err != nil {
			return MsgError{Err: err}
		}
		return nil
	}
}

func (m *Model) selectMode(mode string) tea.Cmd {
	if mode == m.snapshot.Mode {
		return nil
	}
	controller := m.controller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := controller.SelectMode(ctx, mode); err != nil {
			return MsgError{Err: err}
		}
		return nil
	}
}

func waitForEvent(events <-chan phasetimer.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return MsgEventsClosed{}
		}
		return MsgEvent{Event: event}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	view := display.Render(m.snapshot)
	controls := phasetimer.ControlsFor(m.snapshot.State)

	var b strings.Builder
	b.WriteString(headerStyle.Render("Exam Writing Timer"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs(controls.ModeSelectionEnabled))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(view.Title))
	if view.Duration != "" {
		b.WriteString("\n")
		b.WriteString(durationStyle.Render(view.Duration))
	}
	b.WriteString("\n")
	b.WriteString(clockStyle.BorderForeground(stateColor(m.snapshot.State)).Render(view.Clock))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(display.ProgressFraction(m.snapshot)))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(view.Info))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderPrimaryHint(controls))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return appStyle.Render(b.String())
}

func (m *Model) renderTabs(enabled bool) string {
	tabs := make([]string, 0, len(m.modes))
	for _, mode := range m.modes {
		switch {
		case mode == m.snapshot.Mode:
			tabs = append(tabs, activeTabStyle.Render(mode))
		case enabled:
			tabs = append(tabs, tabStyle.Render(mode))
		default:
			tabs = append(tabs, lockedTabStyle.Render(mode))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderPrimaryHint(controls phasetimer.Controls) string {
	hint := "[space] " + controls.PrimaryLabel
	if controls.ResetEnabled {
		hint += "   [r] Reset"
	}
	return durationStyle.Render(hint)
}

func stateColor(state phasetimer.State) lipgloss.Color {
	switch state {
	case phasetimer.StateRunning:
		return Colors.Running
	case phasetimer.StatePaused:
		return Colors.Paused
	case phasetimer.StateFinished:
		return Colors.Finished
	default:
		return Colors.Muted
	}
}
