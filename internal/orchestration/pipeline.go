package orchestration

import (
	"context"

	apperrors "github.com/agbru/sleepstat/internal/errors"
	"github.com/agbru/sleepstat/internal/logging"
	"github.com/agbru/sleepstat/internal/metrics"
	"github.com/agbru/sleepstat/internal/results"
	"github.com/agbru/sleepstat/internal/summary"
)

// Outcome describes a completed run.
type Outcome struct {
	// Rows is the summary table, sorted by requested duration then name.
	Rows []summary.Row
	// SummaryPath is the summary CSV that was written.
	SummaryPath string
	// WorkbookPath is the accumulated workbook, empty when accumulation is off.
	WorkbookPath string
	// Stats holds the run counters.
	Stats *metrics.RunStats
}

// Pipeline aggregates the result files of one directory. Files are handled
// strictly one after the other in directory-listing order.
type Pipeline struct {
	dir      string
	open     AccumulatorOpener
	progress ProgressReporter
	logger   logging.Logger
	stats    *metrics.RunStats
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAccumulator enables accumulation; open is called once per run.
func WithAccumulator(open AccumulatorOpener) Option {
	return func(p *Pipeline) { p.open = open }
}

// WithProgressReporter sets the per-file progress reporter.
func WithProgressReporter(r ProgressReporter) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.progress = r
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStats sets the counters the run records into.
func WithStats(s *metrics.RunStats) Option {
	return func(p *Pipeline) { p.stats = s }
}

// NewPipeline returns a pipeline over dir. Without options it reports no
// progress, logs nothing and does not accumulate.
func NewPipeline(dir string, opts ...Option) *Pipeline {
	p := &Pipeline{
		dir:      dir,
		progress: NullProgressReporter{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.stats == nil {
		p.stats = metrics.NewRunStats()
	}
	return p
}

// Run discovers, summarizes and finalizes. Any error aborts the run; the
// accumulator, when one was opened, is closed on every path and a close
// failure is reported if nothing failed earlier. On success it is closed
// before the summary is written. Cancellation is checked between files.
func (p *Pipeline) Run(ctx context.Context) (outcome Outcome, err error) {
	defer p.stats.Finish()

	scan, err := results.Scan(p.dir)
	if err != nil {
		return Outcome{}, err
	}
	p.stats.RecordScan(scan.Entries, len(scan.Files), scan.Entries-len(scan.Files))
	for _, name := range scan.Skipped {
		p.logger.Debug("skipping csv without duration in name", logging.String("file", name))
	}
	p.logger.Debug("discovered result files",
		logging.String("dir", p.dir),
		logging.Int("entries", scan.Entries),
		logging.Int("matched", len(scan.Files)))

	var acc Accumulator
	if p.open != nil {
		if acc, err = p.open(p.dir); err != nil {
			return Outcome{}, err
		}
		defer func() {
			if acc == nil {
				return
			}
			if cerr := acc.Close(); cerr != nil && err == nil {
				outcome, err = Outcome{}, cerr
			}
		}()
	}

	rows := make([]summary.Row, 0, len(scan.Files))
	for _, f := range scan.Files {
		if err := ctx.Err(); err != nil {
			return Outcome{}, apperrors.WrapError(err, "aggregation stopped before %s", f.Name)
		}
		p.progress.FileStarted(f.Name)

		sample, err := results.LoadSamples(f)
		if err != nil {
			return Outcome{}, err
		}
		row := summary.Summarize(f, sample)
		rows = append(rows, row)
		p.stats.RecordFile(sample.Len())
		p.logger.Debug("summarized result file",
			logging.String("file", f.Name),
			logging.Int("rows", sample.Len()),
			logging.Float64("requested_ns", row.RequestedNs),
			logging.Float64("mean_ns", row.MeanNs))

		if acc != nil {
			if err := acc.AddSection(f.Name, sample); err != nil {
				return Outcome{}, err
			}
			p.stats.RecordSheet()
		}
	}

	// The workbook is saved before the summary, so a failed save leaves the
	// previous summary in place.
	var workbookPath string
	if acc != nil {
		workbookPath = acc.Path()
		cerr := acc.Close()
		acc = nil
		if cerr != nil {
			return Outcome{}, cerr
		}
	}

	sorted, path, err := summary.Finalize(rows, p.dir)
	if err != nil {
		return Outcome{}, err
	}

	outcome = Outcome{Rows: sorted, SummaryPath: path, WorkbookPath: workbookPath, Stats: p.stats}
	p.logger.Info("aggregation complete",
		logging.Int("files", p.stats.Processed()),
		logging.Int("rows", p.stats.Rows()),
		logging.Int("skipped", p.stats.Skipped()),
		logging.String("summary", path))
	return outcome, nil
}
