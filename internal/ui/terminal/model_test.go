package terminal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"examtimer/internal/core/model"
	"examtimer/internal/core/phasetimer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu       sync.Mutex
	commands []phasetimer.Command
	modes    []string
	err      error
}

func (controller *fakeController) Dispatch(_ context.Context, command phasetimer.Command) (bool, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.commands = append(controller.commands, command)
	return controller.err == nil, controller.err
}

func (controller *fakeController) SelectMode(_ context.Context, mode string) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.modes = append(controller.modes, mode)
	return controller.err
}

func snapshotFor(t *testing.T, state phasetimer.State) phasetimer.Snapshot {
	t.Helper()
	engine, err := phasetimer.New(model.DefaultCatalog(), model.ModeTask1, phasetimer.Config{})
	require.NoError(t, err)
	switch state {
	case phasetimer.StateRunning:
		engine.Start()
		engine.Tick()
	case phasetimer.StatePaused:
		engine.Start()
		engine.Tick()
		engine.Pause()
	case phasetimer.StateFinished:
		engine.Start()
		for i := 0; i < 1200; i++ {
			engine.Tick()
		}
	}
	return engine.Snapshot()
}

func newTestModel(t *testing.T, state phasetimer.State) (*Model, *fakeController) {
	t.Helper()
	controller := &fakeController{}
	events := make(chan phasetimer.Event, 1)
	return NewModel(controller, events, []string{model.ModeTask1, model.ModeTask2}, snapshotFor(t, state)), controller
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestUpdate_PrimaryKeyDispatchesToggle(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateInitial)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []phasetimer.Command{phasetimer.CommandToggle}, controller.commands)
}

func TestUpdate_ResetIgnoredInInitial(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateInitial)

	_, cmd := m.Update(runes("r"))
	assert.Nil(t, cmd)
	assert.Empty(t, controller.commands)
}

func TestUpdate_ResetWhileRunning(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateRunning)

	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []phasetimer.Command{phasetimer.CommandReset}, controller.commands)
}

func TestUpdate_ModeSwitchLockedWhileRunning(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateRunning)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Empty(t, controller.modes)
}

func TestUpdate_ModeSwitchCycles(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateFinished)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	cmd()

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{model.ModeTask2, model.ModeTask2}, controller.modes)
}

func TestUpdate_CommandErrorIsShown(t *testing.T) {
	m, controller := newTestModel(t, phasetimer.StateInitial)
	controller.err = errors.New("runner stopped")

	_, cmd := m.Update(runes(" "))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, MsgError{}, msg)

	m.Update(msg)
	assert.Contains(t, m.View(), "runner stopped")
}

func TestUpdate_EventReplacesSnapshot(t *testing.T) {
	m, _ := newTestModel(t, phasetimer.StateInitial)
	running := snapshotFor(t, phasetimer.StateRunning)

	_, cmd := m.Update(MsgEvent{Event: phasetimer.Event{Type: phasetimer.EventTick, Snapshot: running}})
	assert.NotNil(t, cmd)
	assert.Equal(t, running, m.snapshot)
	assert.Contains(t, m.View(), "Phase 1: Read the question and analyse charts")
}

func TestUpdate_EventsClosedQuits(t *testing.T) {
	m, _ := newTestModel(t, phasetimer.StateInitial)

	_, cmd := m.Update(MsgEventsClosed{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, phasetimer.StateRunning)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_States(t *testing.T) {
	tests := []struct {
		state phasetimer.State
		want  []string
	}{
		{phasetimer.StateInitial, []string{"Ready to Start!", "Total time: 20 minutes", "[space] Start"}},
		{phasetimer.StateRunning, []string{"Time remaining: 19:59", "[space] Pause", "[r] Reset"}},
		{phasetimer.StatePaused, []string{"[space] Resume"}},
		{phasetimer.StateFinished, []string{"Time Complete!", "Great job! Review your work.", "[space] Restart"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			m, _ := newTestModel(t, tt.state)
			view := m.View()
			for _, want := range tt.want {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan phasetimer.Event, 1)
	events <- phasetimer.Event{Type: phasetimer.EventFinished}

	msg := waitForEvent(events)()
	require.IsType(t, MsgEvent{}, msg)
	assert.Equal(t, phasetimer.EventFinished, msg.(MsgEvent).Event.Type)

	close(events)
	assert.IsType(t, MsgEventsClosed{}, waitForEvent(events)())
}
