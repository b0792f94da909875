package cli

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/sleepstat/internal/errors"
	"github.com/agbru/sleepstat/internal/orchestration"
	"github.com/agbru/sleepstat/internal/summary"
	"github.com/agbru/sleepstat/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It prints each file name on its own line before the file is read,
// so the last name printed before an error is the file that caused it.
type CLIProgressReporter struct {
	Out io.Writer
}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// FileStarted prints name.
func (r CLIProgressReporter) FileStarted(name string) {
	fmt.Fprintf(r.Out, "%s%s%s\n", ui.ColorBlue(), name, ui.ColorReset())
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummary displays the summary table.
func (CLIResultPresenter) PresentSummary(rows []summary.Row, out io.Writer) {
	DisplaySummaryTable(out, rows)
}

// PresentOutcome displays the written paths and run totals.
func (CLIResultPresenter) PresentOutcome(outcome orchestration.Outcome, out io.Writer) {
	DisplayOutcome(out, outcome)
}

// HandleError prints err and returns its exit code. A nil error prints
// nothing and returns apperrors.ExitSuccess.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	code := apperrors.ExitCodeFor(err)
	switch code {
	case apperrors.ExitSuccess:
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled. %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}
