package terminal

import (
	"context"
	"errors"
	"fmt"

	"examtimer/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a session in the terminal and blocks until the user quits.
func Run(ctx context.Context, options app.Options) error {
	runner, err := options.NewRunner()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := runner.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	snapshot, err := runner.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read initial state: %w", err)
	}

	options.Logger.Info().Str("mode", options.Mode).Msg("terminal session started")
	model := NewModel(runner, events, options.Catalog.Modes(), snapshot)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	options.Logger.Info().Msg("terminal session ended")
	return nil
}
