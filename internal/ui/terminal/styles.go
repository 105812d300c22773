package terminal

import "github.com/charmbracelet/lipgloss"

// Colors defines the palette of the terminal timer.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
	Finished lipgloss.Color
	Error    lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"),
	Muted:    lipgloss.Color("#636E72"),
	Text:     lipgloss.Color("#DFE6E9"),
	Running:  lipgloss.Color("#00B894"),
	Paused:   lipgloss.Color("#FDCB6E"),
	Finished: lipgloss.Color("#74B9FF"),
	Error:    lipgloss.Color("#D63031"),
}

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text).
			Background(Colors.Primary).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(Colors.Text).
			Padding(0, 1)

	lockedTabStyle = tabStyle.Foreground(Colors.Muted)

	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	durationStyle = lipgloss.NewStyle().Foreground(Colors.Muted)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			MarginTop(1).
			Border(lipgloss.RoundedBorder())

	infoStyle = lipgloss.NewStyle().Foreground(Colors.Text)

	errorStyle = lipgloss.NewStyle().Foreground(Colors.Error)
)
