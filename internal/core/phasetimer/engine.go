package phasetimer

import (
	"errors"
	"fmt"

	"examtimer/internal/core/model"
	"examtimer/internal/core/schedule"
)

// ErrUnknownMode indicates a mode missing from the catalog.
var ErrUnknownMode = errors.New("unknown mode")

// Config contains collaborators for Engine.
type Config struct {
	Ticks    TickSource
	Listener Listener
}

// Engine is the phase timer state machine.
//
// Engine is not safe for concurrent use. Drive it from one goroutine; Runner
// does that for the front ends.
type Engine struct {
	catalog  model.Catalog
	mode     string
	schedule schedule.Schedule
	state    State
	elapsed  int
	phase    int
	ticks    TickSource
	listener Listener
}

// New creates an Engine in the Initial state for mode.
func New(catalog model.Catalog, mode string, config Config) (*Engine, error) {
	phases, ok := catalog.Phases(mode)
	if !ok {
		return nil, fmt.Errorf("new engine for %q: %w", mode, ErrUnknownMode)
	}
	if config.Ticks == nil {
		config.Ticks = noopTicks{}
	}
	if config.Listener == nil {
		config.Listener = ListenerFuncs{}
	}

	engine := &Engine{
		catalog:  catalog,
		mode:     mode,
		schedule: schedule.Build(phases),
		state:    StateInitial,
		ticks:    config.Ticks,
		listener: config.Listener,
	}
	engine.phase = engine.firstPhase()
	return engine, nil
}

// SelectMode replaces the schedule and resets, even while running.
func (engine *Engine) SelectMode(mode string) error {
	phases, ok := engine.catalog.Phases(mode)
	if !ok {
		return fmt.Errorf("select mode %q: %w", mode, ErrUnknownMode)
	}
	engine.mode = mode
	engine.schedule = schedule.Build(phases)
	engine.Reset()
	return nil
}

// Start begins a run from Initial. From Finished it behaves as Reset.
func (engine *Engine) Start() bool {
	switch engine.state {
	case StateInitial:
		if engine.schedule.TotalMinutes() <= 0 {
			return false
		}
		engine.state = StateRunning
		engine.ticks.Activate()
		return true
	case StateFinished:
		return engine.Reset()
	default:
		return false
	}
}

// Pause freezes a running timer.
func (engine *Engine) Pause() bool {
	if engine.state != StateRunning {
		return false
	}
	engine.state = StatePaused
	engine.ticks.Deactivate()
	return true
}

// Resume continues a paused timer.
func (engine *Engine) Resume() bool {
	if engine.state != StatePaused {
		return false
	}
	engine.state = StateRunning
	engine.ticks.Activate()
	return true
}

// Reset returns to Initial from any state. It reports whether anything changed.
func (engine *Engine) Reset() bool {
	engine.ticks.Deactivate()
	changed := engine.state != StateInitial || engine.elapsed != 0 || engine.phase != engine.firstPhase()
	engine.state = StateInitial
	engine.elapsed = 0
	engine.phase = engine.firstPhase()
	return changed
}

// Toggle applies the primary action for the current state.
func (engine *Engine) Toggle() bool {
	switch engine.state {
	case StateInitial:
		return engine.Start()
	case StateRunning:
		return engine.Pause()
	case StatePaused:
		return engine.Resume()
	default:
		return engine.Reset()
	}
}

// Tick advances a running timer by one second.
func (engine *Engine) Tick() bool {
	if engine.state != StateRunning {
		return false
	}
	engine.elapsed++
	engine.recomputePhase()

	total := engine.schedule.TotalSeconds()
	if total > 0 && engine.elapsed >= total {
		engine.state = StateFinished
		engine.ticks.Deactivate()
		engine.listener.Finished()
	}
	return true
}

func (engine *Engine) recomputePhase() {
	next := engine.schedule.PhaseAt(engine.elapsed / 60)
	if next < 0 || next == engine.phase {
		return
	}
	engine.phase = next
	engine.listener.PhaseChanged(next)
}

func (engine *Engine) firstPhase() int {
	if engine.schedule.Len() == 0 {
		return -1
	}
	return 0
}

// Mode returns the active mode ID.
func (engine *Engine) Mode() string {
	return engine.mode
}

// Catalog returns the catalog modes are selected from.
func (engine *Engine) Catalog() model.Catalog {
	return engine.catalog
}

// Schedule returns the active schedule.
func (engine *Engine) Schedule() schedule.Schedule {
	return engine.schedule
}

// State returns the current state.
func (engine *Engine) State() State {
	return engine.state
}

// ElapsedSeconds returns the seconds counted in this run.
func (engine *Engine) ElapsedSeconds() int {
	return engine.elapsed
}

// PhaseIndex returns the current phase index, or -1 for an empty schedule.
func (engine *Engine) PhaseIndex() int {
	return engine.phase
}

// CurrentPhase returns the phase being worked on. There is none before a run
// starts, after it finishes, or when the schedule is empty.
func (engine *Engine) CurrentPhase() (model.Phase, bool) {
	if engine.state == StateInitial || engine.state == StateFinished {
		return model.Phase{}, false
	}
	return engine.schedule.Phase(engine.phase)
}

// RemainingSeconds returns the seconds left in the schedule, never negative.
func (engine *Engine) RemainingSeconds() int {
	remaining := engine.schedule.TotalSeconds() - engine.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormattedElapsed returns elapsed time as MM:SS.
func (engine *Engine) FormattedElapsed() string {
	return FormatClock(engine.elapsed)
}

// Remaining returns the time left as MM:SS.
func (engine *Engine) Remaining() string {
	return FormatClock(engine.RemainingSeconds())
}

// ProgressPercentage returns elapsed time as a percentage of the schedule.
func (engine *Engine) ProgressPercentage() float64 {
	total := engine.schedule.TotalSeconds()
	if total <= 0 {
		return 0
	}
	return float64(engine.elapsed) / float64(total) * 100
}

// Snapshot captures the engine state for rendering.
func (engine *Engine) Snapshot() Snapshot {
	phase, hasPhase := engine.CurrentPhase()
	return Snapshot{
		Mode:           engine.mode,
		State:          engine.state,
		ElapsedSeconds: engine.elapsed,
		TotalMinutes:   engine.schedule.TotalMinutes(),
		PhaseIndex:     engine.phase,
		PhaseCount:     engine.schedule.Len(),
		Phase:          phase,
		HasPhase:       hasPhase,
		Elapsed:        engine.FormattedElapsed(),
		Remaining:      engine.Remaining(),
		Progress:       engine.ProgressPercentage(),
	}
}

// FormatClock renders seconds as zero-padded MM:SS. Negative input renders as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

type noopTicks struct{}

func (noopTicks) Activate()   {}
func (noopTicks) Deactivate() {}
