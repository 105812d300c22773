// Package desktop wires the timer session into a fyne window and tray.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"examtimer/internal/app"
	"examtimer/internal/core/model"
	"examtimer/internal/core/phasetimer"
	"examtimer/internal/platform"
	"examtimer/internal/storage"
	"examtimer/internal/ui/display"
	"examtimer/internal/ui/preferences"
	"examtimer/internal/ui/timerwindow"
	"examtimer/internal/ui/tray"
	"examtimer/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
)

const (
	windowTitle    = "Exam Writing Timer"
	commandTimeout = time.Second
)

// Run opens the desktop timer and blocks until the user quits.
func Run(ctx context.Context, options app.Options) error {
	logger := options.Logger.With().Str("component", "desktop").Logger()

	guard, err := platform.AcquireSingleInstance(app.Name)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn().Msg("another timer is already open")
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	runner, err := options.NewRunner()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := runner.Subscribe(16)
	runnerDone := make(chan struct{})
	go func() {
		defer close(runnerDone)
		_ = runner.Run(ctx)
	}()

	fyneApp := fyneapp.NewWithID(app.ID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	var notifyOnFinish atomic.Bool
	notifyOnFinish.Store(options.Settings.NotifyOnFinish)

	timerWindow := timerwindow.New(fyneApp, timerwindow.Config{
		Title: windowTitle,
		Modes: options.Catalog.Modes(),
	}, runner, options.Logger)
	timerWindow.SetMaster()

	settingsPath, err := storage.SettingsPath(app.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("resolve settings path")
	}
	prefsWindow := preferences.New(fyneApp, options.Catalog, options.Settings, settingsPath, func(updated model.Settings) {
		notifyOnFinish.Store(updated.NotifyOnFinish)
		if err := storage.SaveSettings(app.Name, updated); err != nil {
			logger.Error().Err(err).Msg("save settings")
			return
		}
		logger.Info().Str("default_mode", updated.DefaultMode).Str("path", settingsPath).Msg("settings saved")
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(fynedesktop.App); ok {
		trayManager = tray.New(desktopApp, windowTitle, tray.Icons{
			Active:   resources.MustIcon(resources.IconActive),
			Paused:   resources.MustIcon(resources.IconPaused),
			Finished: resources.MustIcon(resources.IconDone),
		}, tray.Callbacks{
			OnShow:        timerWindow.Show,
			OnPrimary:     func() { dispatch(runner, phasetimer.CommandToggle, logger) },
			OnReset:       func() { dispatch(runner, phasetimer.CommandReset, logger) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		timerWindow.SetCloseIntercept(timerWindow.Hide)
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
	}

	snapshot, err := runner.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read initial state: %w", err)
	}
	timerWindow.Render(snapshot)
	if trayManager != nil {
		fyne.Do(func() {
			trayManager.Render(snapshot)
		})
	}

	go func() {
		for event := range events {
			handleEvent(event, fyneApp, timerWindow, trayManager, notifyOnFinish.Load())
		}
	}()

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	logger.Info().Str("mode", options.Mode).Msg("desktop session started")
	timerWindow.Show()
	fyneApp.Run()

	cancel()
	<-runnerDone
	logger.Info().Msg("desktop session ended")
	return nil
}

func handleEvent(event phasetimer.Event, fyneApp fyne.App, timerWindow *timerwindow.Window, trayManager *tray.Manager, notify bool) {
	timerWindow.Render(event.Snapshot)
	if trayManager != nil {
		fyne.Do(func() {
			trayManager.Render(event.Snapshot)
		})
	}
	if event.Type == phasetimer.EventFinished && notify {
		view := display.Render(event.Snapshot)
		fyneApp.SendNotification(fyne.NewNotification(view.Title, view.Info))
	}
}

func dispatch(runner *phasetimer.Runner, command phasetimer.Command, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if _, err := runner.Dispatch(ctx, command); err != nil {
		logger.Error().Err(err).Str("command", string(command)).Msg("dispatch command")
	}
}
