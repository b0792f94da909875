//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"

	"github.com/agbru/sleepstat/internal/results"
	"github.com/agbru/sleepstat/internal/summary"
)

// ProgressReporter is told about each result file before it is loaded.
// This keeps the pipeline free of terminal concerns while still letting the
// CLI name the file a failure belongs to.
type ProgressReporter interface {
	// FileStarted is called once per result file, before it is read.
	FileStarted(name string)
}

// Accumulator receives the raw rows of every processed file. The workbook
// writer is the production implementation.
type Accumulator interface {
	// AddSection stores one file's rows under its name.
	AddSection(name string, sample results.RawSample) error
	// Close persists what was accumulated and releases the target.
	Close() error
	// Path is where the accumulated output is written.
	Path() string
}

// AccumulatorOpener creates the accumulator for a results directory. It is
// invoked once, after discovery succeeds and before the first file is read.
type AccumulatorOpener func(dir string) (Accumulator, error)

// ResultPresenter defines the interface for presenting a finished run.
type ResultPresenter interface {
	// PresentSummary displays the sorted summary table.
	PresentSummary(rows []summary.Row, out io.Writer)

	// PresentOutcome lists the files written and the run totals.
	PresentOutcome(outcome Outcome, out io.Writer)

	// HandleError reports err and returns the process exit code.
	HandleError(err error, out io.Writer) int
}
