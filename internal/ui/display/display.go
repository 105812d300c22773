// Package display turns engine snapshots into the texts shown by front ends.
package display

import (
	"fmt"

	"examtimer/internal/core/phasetimer"
)

const (
	readyTitle    = "Ready to Start!"
	completeTitle = "🎉 Time Complete!"
	completeInfo  = "Great job! Review your work."
)

// View holds the rendered texts for one snapshot.
type View struct {
	Title    string
	Duration string
	Clock    string
	Info     string
	Status   string
}

// Render builds the texts for a snapshot.
func Render(snapshot phasetimer.Snapshot) View {
	return View{
		Title:    Title(snapshot),
		Duration: Duration(snapshot),
		Clock:    snapshot.Elapsed,
		Info:     Info(snapshot),
		Status:   Status(snapshot),
	}
}

// Title returns the phase heading.
func Title(snapshot phasetimer.Snapshot) string {
	switch snapshot.State {
	case phasetimer.StateFinished:
		return completeTitle
	case phasetimer.StateInitial:
		return readyTitle
	}
	if !snapshot.HasPhase {
		return readyTitle
	}
	return fmt.Sprintf("Phase %d: %s", snapshot.PhaseIndex+1, snapshot.Phase.Name)
}

// Duration returns the current phase length, or nothing outside a run.
func Duration(snapshot phasetimer.Snapshot) string {
	if !snapshot.HasPhase {
		return ""
	}
	return formatMinutes(snapshot.Phase.DurationMinutes)
}

// Info returns the line under the clock.
func Info(snapshot phasetimer.Snapshot) string {
	switch snapshot.State {
	case phasetimer.StateFinished:
		return completeInfo
	case phasetimer.StateInitial:
		return "Total time: " + formatMinutes(snapshot.TotalMinutes)
	}
	return "Time remaining: " + snapshot.Remaining
}

// Status returns a one-line summary for the tray and terminal title.
func Status(snapshot phasetimer.Snapshot) string {
	switch snapshot.State {
	case phasetimer.StateFinished:
		return fmt.Sprintf("%s complete", snapshot.Mode)
	case phasetimer.StateInitial:
		return fmt.Sprintf("%s ready (%s)", snapshot.Mode, formatMinutes(snapshot.TotalMinutes))
	}
	status := fmt.Sprintf("%s %s left", snapshot.Mode, snapshot.Remaining)
	if snapshot.HasPhase {
		status = fmt.Sprintf("%s, phase %d/%d", status, snapshot.PhaseIndex+1, snapshot.PhaseCount)
	}
	if snapshot.State == phasetimer.StatePaused {
		status += " (paused)"
	}
	return status
}

// ProgressFraction converts a percentage to a 0..1 fraction for progress bars.
func ProgressFraction(snapshot phasetimer.Snapshot) float64 {
	fraction := snapshot.Progress / 100
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

func formatMinutes(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
