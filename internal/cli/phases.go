package cli

import (
	"fmt"
	"strconv"

	"examtimer/internal/core/model"
	"examtimer/internal/core/phasetimer"
	"examtimer/internal/core/schedule"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newPhasesCommand(catalog model.Catalog) *cobra.Command {
	return &cobra.Command{
		Use:   "phases [mode]",
		Short: "List the phases of each task mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := catalog.Modes()
			if len(args) == 1 {
				mode, ok := matchMode(args[0], catalog)
				if !ok {
					return fmt.Errorf("%w %q", ErrUnknownMode, args[0])
				}
				modes = []string{mode}
			}

			out := cmd.OutOrStdout()
			for i, mode := range modes {
				if i > 0 {
					fmt.Fprintln(out)
				}
				phases, _ := catalog.Phases(mode)
				built := schedule.Build(phases)
				fmt.Fprintf(out, "%s (%d minutes)\n", mode, built.TotalMinutes())
				fmt.Fprintln(out, phaseTable(built).Render())
			}
			return nil
		},
	}
}

func phaseTable(built schedule.Schedule) *table.Table {
	ends := built.CumulativeEndMinutes()
	rows := make([][]string, 0, built.Len())
	start := 0
	for i, phase := range built.Phases() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			phase.Name,
			strconv.Itoa(phase.DurationMinutes),
			phasetimer.FormatClock(start*60) + "–" + phasetimer.FormatClock(ends[i]*60),
		})
		start = ends[i]
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PHASE", "MIN", "WINDOW").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
