package preferences

import (
	"examtimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings model.Settings
	onSave   func(model.Settings)
	mode     *widget.Select
	notify   *widget.Check
	logLevel *widget.Select
}

// New creates a preferences window. location is shown as the settings file
// path when not empty.
func New(app fyne.App, catalog model.Catalog, settings model.Settings, location string, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Timer Settings")

	mode := widget.NewSelect(catalog.Modes(), nil)
	notify := widget.NewCheck("Notify when time is up", nil)
	logLevel := widget.NewSelect(logLevels, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Task at startup"), mode),
		notify,
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		widget.NewLabelWithStyle("Log level changes apply after restart.", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
	)
	if location != "" {
		path := widget.NewLabelWithStyle("Saved to "+location, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		path.Wrapping = fyne.TextWrapBreak
		form.Add(path)
	}

	saveButton := widget.NewButton("Save", nil)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 260))

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		mode:     mode,
		notify:   notify,
		logLevel: logLevel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.mode.SetSelected(settings.DefaultMode)
	prefs.notify.SetChecked(settings.NotifyOnFinish)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	if prefs.mode.Selected != "" {
		settings.DefaultMode = prefs.mode.Selected
	}
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}
	settings.NotifyOnFinish = prefs.notify.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
