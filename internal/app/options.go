// Package app holds the options shared by the desktop and terminal front ends.
package app

import (
	"context"
	"time"

	"examtimer/internal/core/model"
	"examtimer/internal/core/phasetimer"

	"github.com/rs/zerolog"
)

// Name is used for the settings directory and the single-instance lock.
const Name = "ExamTimer"

// ID is the desktop application identifier.
const ID = "com.examtimer.app"

// Options contains everything a front end needs to start a session.
type Options struct {
	Catalog      model.Catalog
	Settings     model.Settings
	Mode         string
	TickInterval time.Duration
	Logger       zerolog.Logger
}

// Launcher starts a front end and blocks until it exits.
type Launcher func(ctx context.Context, options Options) error

// NewRunner creates the session runner for the selected mode.
func (options Options) NewRunner() (*phasetimer.Runner, error) {
	return phasetimer.NewRunner(options.Catalog, options.Mode, phasetimer.RunnerConfig{
		TickInterval: options.TickInterval,
		Logger:       options.Logger,
	})
}
