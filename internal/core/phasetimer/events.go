package phasetimer

import (
	"time"

	"examtimer/internal/core/model"
)

// State represents the current engine mode.
type State string

const (
	StateInitial  State = "initial"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// Listener receives engine notifications. Calls happen synchronously on the
// goroutine driving the engine.
type Listener interface {
	PhaseChanged(index int)
	Finished()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnPhaseChanged func(index int)
	OnFinished     func()
}

// PhaseChanged implements Listener.
func (funcs ListenerFuncs) PhaseChanged(index int) {
	if funcs.OnPhaseChanged != nil {
		funcs.OnPhaseChanged(index)
	}
}

// Finished implements Listener.
func (funcs ListenerFuncs) Finished() {
	if funcs.OnFinished != nil {
		funcs.OnFinished()
	}
}

// TickSource is the periodic clock the engine switches on and off.
type TickSource interface {
	Activate()
	Deactivate()
}

// EventType defines the type of Runner event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventModeChange  EventType = "mode_change"
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventFinished    EventType = "finished"
)

// Snapshot is a read-only view of the engine for renderers.
type Snapshot struct {
	Mode           string
	State          State
	ElapsedSeconds int
	TotalMinutes   int
	PhaseIndex     int
	PhaseCount     int
	Phase          model.Phase
	HasPhase       bool
	Elapsed        string
	Remaining      string
	Progress       float64
}

// Event represents a Runner update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}
