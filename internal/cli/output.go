// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySummaryTable], [DisplayOutcome].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatSummaryTable].

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/agbru/sleepstat/internal/format"
	"github.com/agbru/sleepstat/internal/orchestration"
	"github.com/agbru/sleepstat/internal/summary"
	"github.com/agbru/sleepstat/internal/ui"
)

// summaryHeaders are the terminal column titles, in summary column order.
var summaryHeaders = []string{"Name", "Requested", "Mean", "Std Dev", "Min", "Max", "Mean Error"}

const (
	nameColumn      = 0
	meanErrorColumn = 6
)

// FormatSummaryTable renders rows as a bordered table with humanized
// durations. The mean error column is colored by sign.
func FormatSummaryTable(rows []summary.Row) string {
	theme := ui.GetCurrentTableTheme()
	cells := lo.Map(rows, func(r summary.Row, _ int) []string {
		return []string{
			r.Name,
			format.FormatNanoseconds(r.RequestedNs),
			format.FormatNanoseconds(r.MeanNs),
			format.FormatNanoseconds(r.StdDevNs),
			format.FormatNanoseconds(r.MinNs),
			format.FormatNanoseconds(r.MaxNs),
			format.FormatNanoseconds(r.MeanErrorNs),
		}
	})

	base := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(summaryHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(theme.Header)
			}
			if col == nameColumn {
				return base.Foreground(theme.Name)
			}
			cell := base.Align(lipgloss.Right).Foreground(theme.Value)
			if col == meanErrorColumn && row >= 0 && row < len(rows) {
				if rows[row].MeanErrorNs < 0 {
					return cell.Foreground(theme.Negative)
				}
				return cell.Foreground(theme.Positive)
			}
			return cell
		})
	return t.String()
}

// DisplaySummaryTable writes the summary table to out.
func DisplaySummaryTable(out io.Writer, rows []summary.Row) {
	if len(rows) == 0 {
		fmt.Fprintf(out, "%sNo result files found.%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintln(out, FormatSummaryTable(rows))
}

// DisplayOutcome lists the files a run wrote and its totals.
func DisplayOutcome(out io.Writer, outcome orchestration.Outcome) {
	fmt.Fprintf(out, "%s✓ Summary written to: %s%s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), ui.ColorUnderline(), outcome.SummaryPath, ui.ColorReset())
	if outcome.WorkbookPath != "" {
		fmt.Fprintf(out, "%s✓ Workbook written to: %s%s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), ui.ColorUnderline(), outcome.WorkbookPath, ui.ColorReset())
	}
	if s := outcome.Stats; s != nil {
		fmt.Fprintf(out, "Processed %s%d%s files (%d rows) in %s\n",
			ui.ColorBold(), s.Processed(), ui.ColorReset(), s.Rows(), format.FormatExecutionDuration(s.Elapsed()))
		if n := s.Skipped(); n > 0 {
			fmt.Fprintf(out, "%sSkipped %d entries without a requested duration%s\n",
				ui.ColorMagenta(), n, ui.ColorReset())
		}
	}
}
