package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"examtimer/internal/app"
	"examtimer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSettings(t *testing.T, settings model.Settings, err error) {
	t.Helper()
	original := loadSettingsFunc
	loadSettingsFunc = func(string) (model.Settings, error) {
		return settings, err
	}
	t.Cleanup(func() {
		loadSettingsFunc = original
	})
}

type recordedLaunch struct {
	called  bool
	options app.Options
}

func (launch *recordedLaunch) launcher() app.Launcher {
	return func(_ context.Context, options app.Options) error {
		launch.called = true
		launch.options = options
		return nil
	}
}

func execute(t *testing.T, launchers Launchers, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test-version", launchers)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCommand_NoArgs_LaunchesDesktop(t *testing.T) {
	stubSettings(t, model.DefaultSettings(), nil)
	desktop := &recordedLaunch{}
	terminal := &recordedLaunch{}

	_, err := execute(t, Launchers{Desktop: desktop.launcher(), Terminal: terminal.launcher()})

	require.NoError(t, err)
	assert.True(t, desktop.called)
	assert.False(t, terminal.called)
	assert.Equal(t, model.ModeTask1, desktop.options.Mode)
	assert.Equal(t, time.Second, desktop.options.TickInterval)
	assert.Equal(t, []string{model.ModeTask1, model.ModeTask2}, desktop.options.Catalog.Modes())
}

func TestNewRootCommand_ModeFromSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.DefaultMode = model.ModeTask2
	stubSettings(t, settings, nil)
	desktop := &recordedLaunch{}

	_, err := execute(t, Launchers{Desktop: desktop.launcher()})

	require.NoError(t, err)
	assert.Equal(t, model.ModeTask2, desktop.options.Mode)
	assert.Equal(t, settings, desktop.options.Settings)
}

func TestNewRootCommand_ModeFlagOverridesSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.DefaultMode = model.ModeTask1
	stubSettings(t, settings, nil)
	terminal := &recordedLaunch{}

	_, err := execute(t, Launchers{Terminal: terminal.launcher()}, "tui", "--mode", "task2", "--tick", "10ms")

	require.NoError(t, err)
	assert.True(t, terminal.called)
	assert.Equal(t, model.ModeTask2, terminal.options.Mode)
	assert.Equal(t, 10*time.Millisecond, terminal.options.TickInterval)
}

func TestNewRootCommand_UnknownMode(t *testing.T) {
	stubSettings(t, model.DefaultSettings(), nil)
	desktop := &recordedLaunch{}

	_, err := execute(t, Launchers{Desktop: desktop.launcher()}, "--mode", "Task 7")

	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.ErrorContains(t, err, "Task 1, Task 2")
	assert.False(t, desktop.called)
}

func TestNewRootCommand_SettingsErrorFallsBack(t *testing.T) {
	stubSettings(t, model.DefaultSettings(), errors.New("parse settings yaml: boom"))
	desktop := &recordedLaunch{}

	out, err := execute(t, Launchers{Desktop: desktop.launcher()})

	require.NoError(t, err)
	assert.True(t, desktop.called)
	assert.Contains(t, out, "using default settings")
}

func TestNewRootCommand_MissingLauncher(t *testing.T) {
	stubSettings(t, model.DefaultSettings(), nil)

	_, err := execute(t, Launchers{}, "tui")
	assert.Error(t, err)
}

func TestNewRootCommand_Version(t *testing.T) {
	out, err := execute(t, Launchers{}, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
}

func TestPhasesCommand_AllModes(t *testing.T) {
	out, err := execute(t, Launchers{}, "phases")

	require.NoError(t, err)
	assert.Contains(t, out, "Task 1 (20 minutes)")
	assert.Contains(t, out, "Task 2 (40 minutes)")
	assert.Contains(t, out, "Write Essay")
	assert.Contains(t, out, "10:00–37:00")
}

func TestPhasesCommand_SingleMode(t *testing.T) {
	out, err := execute(t, Launchers{}, "phases", "task 1")

	require.NoError(t, err)
	assert.Contains(t, out, "analyse charts")
	assert.Contains(t, out, "18:00–20:00")
	assert.NotContains(t, out, "Task 2")
}

func TestPhasesCommand_UnknownMode(t *testing.T) {
	_, err := execute(t, Launchers{}, "phases", "Task 5")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMatchMode(t *testing.T) {
	catalog := model.DefaultCatalog()

	for _, input := range []string{"Task 2", "task2", " TASK 2 "} {
		mode, ok := matchMode(input, catalog)
		assert.True(t, ok, input)
		assert.Equal(t, model.ModeTask2, mode, input)
	}

	_, ok := matchMode("essay", catalog)
	assert.False(t, ok)
}
