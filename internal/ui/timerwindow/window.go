package timerwindow

import (
	"context"
	"image/color"
	"time"

	"examtimer/internal/core/phasetimer"
	"examtimer/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
)

const commandTimeout = time.Second

// Controller forwards user actions to the timer.
type Controller interface {
	Dispatch(ctx context.Context, command phasetimer.Command) (bool, error)
	SelectMode(ctx context.Context, mode string) error
}

// Config defines window contents.
type Config struct {
	Title string
	Modes []string
}

// Window is the main timer window.
type Window struct {
	window        fyne.Window
	controller    Controller
	logger        zerolog.Logger
	modeGroup     *widget.RadioGroup
	titleLabel    *widget.Label
	durationLabel *widget.Label
	clockText     *canvas.Text
	progress      *widget.ProgressBar
	infoLabel     *widget.Label
	primaryButton *widget.Button
	resetButton   *widget.Button
	mode          string
	syncing       bool
}

// New creates the timer window. It stays hidden until Show is called.
func New(app fyne.App, config Config, controller Controller, logger zerolog.Logger) *Window {
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timer := &Window{
		window:     window,
		controller: controller,
		logger:     logger.With().Str("component", "timer_window").Logger(),
	}

	timer.modeGroup = widget.NewRadioGroup(config.Modes, timer.handleModeChange)
	timer.modeGroup.Horizontal = true
	timer.modeGroup.Required = true

	timer.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	timer.titleLabel.Wrapping = fyne.TextWrapWord
	timer.durationLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	timer.clockText = canvas.NewText("00:00", color.NRGBA{R: 108, G: 92, B: 231, A: 255})
	timer.clockText.Alignment = fyne.TextAlignCenter
	timer.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timer.clockText.TextSize = 56

	timer.progress = widget.NewProgressBar()
	timer.progress.TextFormatter = func() string {
		return ""
	}

	timer.infoLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	timer.primaryButton = widget.NewButton("Start", timer.handlePrimary)
	timer.resetButton = widget.NewButton("Reset", timer.handleReset)

	modeRow := container.NewHBox(widget.NewLabel("Choose task:"), timer.modeGroup)
	phaseBox := container.NewVBox(timer.titleLabel, timer.durationLabel)
	buttons := container.NewGridWithColumns(2, timer.primaryButton, timer.resetButton)
	content := container.NewVBox(
		modeRow,
		widget.NewSeparator(),
		phaseBox,
		layout.NewSpacer(),
		timer.clockText,
		timer.progress,
		timer.infoLabel,
		layout.NewSpacer(),
		buttons,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(450, 450))
	window.SetFixedSize(true)
	return timer
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// SetMaster marks the window as the one whose close quits the app.
func (timer *Window) SetMaster() {
	timer.window.SetMaster()
}

// SetCloseIntercept replaces the default close behaviour.
func (timer *Window) SetCloseIntercept(handler func()) {
	timer.window.SetCloseIntercept(handler)
}

// Hide hides the window without quitting.
func (timer *Window) Hide() {
	timer.window.Hide()
}

// Render updates the widgets from a snapshot. Safe to call from any goroutine.
func (timer *Window) Render(snapshot phasetimer.Snapshot) {
	fyne.Do(func() {
		timer.renderUnsafe(snapshot)
	})
}

func (timer *Window) renderUnsafe(snapshot phasetimer.Snapshot) {
	view := display.Render(snapshot)
	controls := phasetimer.ControlsFor(snapshot.State)

	timer.mode = snapshot.Mode
	if timer.modeGroup.Selected != snapshot.Mode {
		timer.syncing = true
		timer.modeGroup.SetSelected(snapshot.Mode)
		timer.syncing = false
	}
	setEnabled(timer.modeGroup, controls.ModeSelectionEnabled)

	timer.titleLabel.SetText(view.Title)
	timer.durationLabel.SetText(view.Duration)
	timer.clockText.Text = view.Clock
	timer.clockText.Refresh()
	timer.progress.SetValue(display.ProgressFraction(snapshot))
	timer.infoLabel.SetText(view.Info)

	timer.primaryButton.SetText(controls.PrimaryLabel)
	if controls.PrimaryEmphasis {
		timer.primaryButton.Importance = widget.WarningImportance
	} else {
		timer.primaryButton.Importance = widget.HighImportance
	}
	timer.primaryButton.Refresh()
	setEnabled(timer.primaryButton, controls.PrimaryEnabled)
	setEnabled(timer.resetButton, controls.ResetEnabled)
}

func (timer *Window) handleModeChange(mode string) {
	if timer.syncing || mode == "" || mode == timer.mode {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := timer.controller.SelectMode(ctx, mode); err != nil {
		timer.logger.Error().Err(err).Str("mode", mode).Msg("select mode")
	}
}

func (timer *Window) handlePrimary() {
	timer.dispatch(phasetimer.CommandToggle)
}

func (timer *Window) handleReset() {
	timer.dispatch(phasetimer.CommandReset)
}

func (timer *Window) dispatch(command phasetimer.Command) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if _, err := timer.controller.Dispatch(ctx, command); err != nil {
		timer.logger.Error().Err(err).Str("command", string(command)).Msg("dispatch command")
	}
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(object disableable, enabled bool) {
	if enabled {
		object.Enable()
		return
	}
	object.Disable()
}
