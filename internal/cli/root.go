// Package cli provides the command-line interface for examtimer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"examtimer/internal/app"
	"examtimer/internal/core/model"
	"examtimer/internal/logging"
	"examtimer/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrUnknownMode is returned for a --mode value missing from the catalog.
var ErrUnknownMode = errors.New("unknown mode")

// loadSettingsFunc is a function variable so tests can avoid the user config dir.
var loadSettingsFunc = storage.LoadSettings

// Launchers are the front ends the commands start.
type Launchers struct {
	Desktop  app.Launcher
	Terminal app.Launcher
}

type globalFlags struct {
	mode         string
	logLevel     string
	logFile      string
	tickInterval time.Duration
}

// NewRootCommand creates the root command. Running it without a subcommand
// opens the desktop window.
func NewRootCommand(version string, launchers Launchers) *cobra.Command {
	flags := &globalFlags{}
	catalog := model.DefaultCatalog()

	root := &cobra.Command{
		Use:   "examtimer",
		Short: "Phase timer for exam writing tasks",
		Long: `examtimer guides a writer through the timed phases of an exam
writing task. Pick a task, press Start, and the timer moves through
reading, planning, writing and review phases on its own.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launch(cmd, flags, catalog, launchers.Desktop, false)
		},
	}

	root.PersistentFlags().StringVarP(&flags.mode, "mode", "m", "", "task mode to select at startup ("+strings.Join(catalog.Modes(), ", ")+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	root.PersistentFlags().DurationVar(&flags.tickInterval, "tick", time.Second, "interval between timer ticks")
	_ = root.PersistentFlags().MarkHidden("tick")

	root.AddCommand(
		newTUICommand(flags, catalog, launchers.Terminal),
		newPhasesCommand(catalog),
	)
	return root
}

func newTUICommand(flags *globalFlags, catalog model.Catalog, launcher app.Launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launch(cmd, flags, catalog, launcher, true)
		},
	}
}

func launch(cmd *cobra.Command, flags *globalFlags, catalog model.Catalog, launcher app.Launcher, quietByDefault bool) error {
	if launcher == nil {
		return errors.New("front end not available in this build")
	}

	settings, settingsErr := loadSettingsFunc(app.Name)

	level := settings.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		logOut = file
	}

	logger := logging.New(level, logOut)
	if quietByDefault && flags.logFile == "" {
		logger = zerolog.Nop()
	}
	if settingsErr != nil {
		logger.Warn().Err(settingsErr).Msg("using default settings")
	}

	mode, err := resolveMode(flags.mode, settings, catalog)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return launcher(ctx, app.Options{
		Catalog:      catalog,
		Settings:     settings,
		Mode:         mode,
		TickInterval: flags.tickInterval,
		Logger:       logger,
	})
}

func resolveMode(flagMode string, settings model.Settings, catalog model.Catalog) (string, error) {
	if flagMode == "" {
		return settings.StartMode(catalog), nil
	}
	if mode, ok := matchMode(flagMode, catalog); ok {
		return mode, nil
	}
	return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownMode, flagMode, strings.Join(catalog.Modes(), ", "))
}

// matchMode accepts mode IDs case-insensitively and without spaces, so
// "task2" selects "Task 2".
func matchMode(input string, catalog model.Catalog) (string, bool) {
	normalized := normalizeMode(input)
	for _, mode := range catalog.Modes() {
		if normalizeMode(mode) == normalized {
			return mode, true
		}
	}
	return "", false
}

func normalizeMode(value string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
}
