package tray

import (
	"testing"

	"examtimer/internal/core/phasetimer"
	"github.com/stretchr/testify/assert"
)

func TestManager_RenderWithoutApp(t *testing.T) {
	primaryCalls := 0
	manager := New(nil, "ExamTimer", Icons{}, Callbacks{
		OnPrimary: func() { primaryCalls++ },
	})

	assert.Equal(t, "Start", manager.primaryItem.Label)
	assert.True(t, manager.resetItem.Disabled)

	manager.Render(phasetimer.Snapshot{
		Mode:       "Task 1",
		State:      phasetimer.StateRunning,
		Remaining:  "12:00",
		HasPhase:   true,
		PhaseIndex: 2,
		PhaseCount: 5,
	})

	assert.Equal(t, "Pause", manager.primaryItem.Label)
	assert.False(t, manager.resetItem.Disabled)
	assert.Equal(t, "Status: Task 1 12:00 left, phase 3/5", manager.statusItem.Label)
	assert.Equal(t, phasetimer.StateRunning, manager.state)

	manager.primaryItem.Action()
	assert.Equal(t, 1, primaryCalls)
}

func TestManager_RenderFinished(t *testing.T) {
	manager := New(nil, "ExamTimer", Icons{}, Callbacks{})

	manager.Render(phasetimer.Snapshot{Mode: "Task 2", State: phasetimer.StateFinished})

	assert.Equal(t, "Restart", manager.primaryItem.Label)
	assert.Equal(t, "Status: Task 2 complete", manager.statusItem.Label)
}
