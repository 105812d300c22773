package phasetimer

import (
	"context"
	"errors"
	"sync"
	"time"

	"examtimer/internal/core/model"

	"github.com/rs/zerolog"
)

// ErrRunnerStopped indicates the runner loop has exited.
var ErrRunnerStopped = errors.New("runner stopped")

// Command is a user action forwarded to the engine.
type Command string

const (
	CommandStart  Command = "start"
	CommandPause  Command = "pause"
	CommandResume Command = "resume"
	CommandReset  Command = "reset"
	CommandToggle Command = "toggle"
)

// RunnerConfig contains runtime options for Runner.
type RunnerConfig struct {
	TickInterval time.Duration
	Logger       zerolog.Logger
}

type request struct {
	apply func(engine *Engine) EventType
	done  chan struct{}
}

// Runner owns an Engine and drives it from a single goroutine. Commands and
// ticks are handled one at a time in arrival order.
type Runner struct {
	engine    *Engine
	options   RunnerConfig
	logger    zerolog.Logger
	requests  chan request
	stopCh    chan struct{}
	newTicker func(time.Duration) (<-chan time.Time, func())
	tickC     <-chan time.Time
	stopTick  func()
	pending   []EventType

	mu       sync.Mutex
	events   []chan Event
	running  bool
	stopped  bool
	stopOnce sync.Once
}

// NewRunner creates a Runner with an Engine in the Initial state for mode.
func NewRunner(catalog model.Catalog, mode string, options RunnerConfig) (*Runner, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	runner := &Runner{
		options:   options,
		logger:    options.Logger.With().Str("component", "runner").Logger(),
		requests:  make(chan request),
		stopCh:    make(chan struct{}),
		newTicker: systemTicker,
	}

	engine, err := New(catalog, mode, Config{
		Ticks: loopTicks{runner: runner},
		Listener: ListenerFuncs{
			OnPhaseChanged: runner.onPhaseChanged,
			OnFinished:     runner.onFinished,
		},
	})
	if err != nil {
		return nil, err
	}
	runner.engine = engine
	return runner, nil
}

// Subscribe registers a new observer channel. Slow observers miss ticks and,
// once the buffer is full, the oldest queued events.
func (runner *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.stopped {
		close(ch)
		return ch
	}
	runner.events = append(runner.events, ch)
	return ch
}

// Run processes commands and ticks until ctx is done, then closes observers.
func (runner *Runner) Run(ctx context.Context) error {
	runner.mu.Lock()
	if runner.running || runner.stopped {
		runner.mu.Unlock()
		return ErrRunnerStopped
	}
	runner.running = true
	runner.mu.Unlock()

	defer runner.shutdown()

	runner.logger.Debug().
		Str("mode", runner.engine.Mode()).
		Dur("tick_interval", runner.options.TickInterval).
		Msg("runner started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-runner.requests:
			runner.publish(req.apply(runner.engine), time.Now())
			close(req.done)
		case tickTime := <-runner.tickC:
			if runner.engine.Tick() {
				runner.publish(EventTick, tickTime)
			}
		}
	}
}

// Dispatch applies a command and reports whether it changed the engine.
func (runner *Runner) Dispatch(ctx context.Context, command Command) (bool, error) {
	applied := false
	err := runner.do(ctx, func(engine *Engine) EventType {
		switch command {
		case CommandStart:
			applied = engine.Start()
		case CommandPause:
			applied = engine.Pause()
		case CommandResume:
			applied = engine.Resume()
		case CommandReset:
			applied = engine.Reset()
		case CommandToggle:
			applied = engine.Toggle()
		}
		runner.logger.Debug().
			Str("command", string(command)).
			Bool("applied", applied).
			Str("state", string(engine.State())).
			Msg("command handled")
		if !applied {
			return ""
		}
		return EventStateChange
	})
	return applied, err
}

// SelectMode switches the schedule, aborting any run in progress.
func (runner *Runner) SelectMode(ctx context.Context, mode string) error {
	var selectErr error
	err := runner.do(ctx, func(engine *Engine) EventType {
		selectErr = engine.SelectMode(mode)
		if selectErr != nil {
			return ""
		}
		runner.logger.Info().Str("mode", mode).Msg("mode selected")
		return EventModeChange
	})
	if err != nil {
		return err
	}
	return selectErr
}

// Snapshot returns the current engine view.
func (runner *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	err := runner.do(ctx, func(engine *Engine) EventType {
		snapshot = engine.Snapshot()
		return ""
	})
	return snapshot, err
}

// Catalog returns the catalog the runner selects modes from.
func (runner *Runner) Catalog() model.Catalog {
	return runner.engine.Catalog()
}

func (runner *Runner) do(ctx context.Context, apply func(engine *Engine) EventType) error {
	req := request{apply: apply, done: make(chan struct{})}
	select {
	case runner.requests <- req:
	case <-runner.stopCh:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (runner *Runner) onPhaseChanged(index int) {
	phase, _ := runner.engine.Schedule().Phase(index)
	runner.logger.Info().
		Int("phase", index+1).
		Str("name", phase.Name).
		Int("elapsed_seconds", runner.engine.ElapsedSeconds()).
		Msg("phase changed")
	runner.pending = append(runner.pending, EventPhaseChange)
}

func (runner *Runner) onFinished() {
	runner.logger.Info().
		Str("mode", runner.engine.Mode()).
		Int("elapsed_seconds", runner.engine.ElapsedSeconds()).
		Msg("timer finished")
	runner.pending = append(runner.pending, EventFinished)
}

func (runner *Runner) publish(primary EventType, at time.Time) {
	types := make([]EventType, 0, len(runner.pending)+1)
	if primary != "" {
		types = append(types, primary)
	}
	types = append(types, runner.pending...)
	runner.pending = runner.pending[:0]
	if len(types) == 0 {
		return
	}

	snapshot := runner.engine.Snapshot()
	for _, eventType := range types {
		runner.emit(Event{Type: eventType, Snapshot: snapshot, At: at})
	}
}

func (runner *Runner) emit(event Event) {
	runner.mu.Lock()
	events := append([]chan Event(nil), runner.events...)
	runner.mu.Unlock()

	for _, ch := range events {
		deliver(ch, event)
	}
}

// deliver never blocks. A full channel drops ticks; any other event replaces
// the oldest queued one so finish and phase changes always reach observers.
func deliver(ch chan Event, event Event) bool {
	select {
	case ch <- event:
		return true
	default:
	}
	if event.Type == EventTick {
		return false
	}

	select {
	case <-ch:
	default:
	}
	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

func (runner *Runner) shutdown() {
	runner.stopOnce.Do(func() {
		loopTicks{runner: runner}.Deactivate()

		runner.mu.Lock()
		runner.stopped = true
		events := runner.events
		runner.events = nil
		runner.mu.Unlock()

		close(runner.stopCh)
		for _, ch := range events {
			close(ch)
		}
		runner.logger.Debug().Msg("runner stopped")
	})
}

// loopTicks switches the runner ticker. It is only called from the Run goroutine.
type loopTicks struct {
	runner *Runner
}

func (ticks loopTicks) Activate() {
	runner := ticks.runner
	if runner.tickC != nil {
		return
	}
	runner.tickC, runner.stopTick = runner.newTicker(runner.options.TickInterval)
}

func (ticks loopTicks) Deactivate() {
	runner := ticks.runner
	if runner.stopTick != nil {
		runner.stopTick()
	}
	runner.tickC = nil
	runner.stopTick = nil
}

func systemTicker(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}
