package tray

import (
	"fmt"

	"examtimer/internal/core/phasetimer"
	"examtimer/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPrimary     func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are the tray icons for each kind of state.
type Icons struct {
	Active   fyne.Resource
	Paused   fyne.Resource
	Finished fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	icons       Icons
	statusItem  *fyne.MenuItem
	primaryItem *fyne.MenuItem
	resetItem   *fyne.MenuItem
	callbacks   Callbacks
	state       phasetimer.State
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		icons:     icons,
		callbacks: callbacks,
		state:     phasetimer.StateInitial,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.primaryItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnPrimary != nil {
			manager.callbacks.OnPrimary()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.resetItem.Disabled = true

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// Render updates status, controls and icon from a snapshot. Call it on the
// fyne goroutine.
func (manager *Manager) Render(snapshot phasetimer.Snapshot) {
	controls := phasetimer.ControlsFor(snapshot.State)
	manager.statusItem.Label = fmt.Sprintf("Status: %s", display.Status(snapshot))
	manager.primaryItem.Label = controls.PrimaryLabel
	manager.primaryItem.Disabled = !controls.PrimaryEnabled
	manager.resetItem.Disabled = !controls.ResetEnabled

	if manager.state != snapshot.State {
		manager.state = snapshot.State
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Active
	switch manager.state {
	case phasetimer.StatePaused:
		icon = manager.icons.Paused
	case phasetimer.StateFinished:
		icon = manager.icons.Finished
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.primaryItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
