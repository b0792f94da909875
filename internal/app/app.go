// Package app wires configuration, logging, the aggregation pipeline and the
// terminal presenter into the sleepstat application.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/agbru/sleepstat/internal/cli"
	"github.com/agbru/sleepstat/internal/config"
	apperrors "github.com/agbru/sleepstat/internal/errors"
	"github.com/agbru/sleepstat/internal/logging"
	"github.com/agbru/sleepstat/internal/metrics"
	"github.com/agbru/sleepstat/internal/orchestration"
	"github.com/agbru/sleepstat/internal/ui"
	"github.com/agbru/sleepstat/internal/workbook"
)

const programName = "sleepstat"

// Application represents the sleepstat application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Presenter orchestration.ResultPresenter
}

// AppOption configures an Application during construction. Options run
// after the command line has been parsed.
type AppOption func(*Application)

// WithResultsDir reads and writes results in dir instead of the default
// directory.
func WithResultsDir(dir string) AppOption {
	return func(a *Application) { a.Config.ResultsDir = dir }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithPresenter sets how results and errors are shown.
func WithPresenter(p orchestration.ResultPresenter) AppOption {
	return func(a *Application) { a.Presenter = p }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	name := programName
	var cmdArgs []string
	if len(args) > 0 {
		name = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(name, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		_, noColor := os.LookupEnv("NO_COLOR")
		app.Logger = logging.NewConsoleLogger(errWriter, programName, logging.ParseLevel(cfg.LogLevel), noColor)
	}
	if app.Presenter == nil {
		app.Presenter = cli.CLIResultPresenter{}
	}
	return app, nil
}

// Run aggregates the results directory and returns the process exit code.
// Progress and the summary go to out; diagnostics go to the error writer.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(false)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	stats := metrics.NewRunStats()
	opts := []orchestration.Option{
		orchestration.WithProgressReporter(cli.CLIProgressReporter{Out: out}),
		orchestration.WithLogger(a.Logger),
		orchestration.WithStats(stats),
	}
	if a.Config.Accumulate {
		opts = append(opts, orchestration.WithAccumulator(openWorkbook))
	}

	outcome, err := orchestration.NewPipeline(a.Config.ResultsDir, opts...).Run(ctx)
	a.writeMetrics(stats)
	if err != nil {
		a.Logger.Debug("run failed",
			logging.Err(err),
			logging.Int("exit_code", apperrors.ExitCodeFor(err)),
			logging.Int("files_done", stats.Processed()))
		return a.Presenter.HandleError(err, a.ErrWriter)
	}

	a.Presenter.PresentSummary(outcome.Rows, out)
	a.Presenter.PresentOutcome(outcome, out)

	mem := stats.Memory()
	a.Logger.Debug("run resources",
		logging.String("elapsed", stats.Elapsed().String()),
		logging.Uint64("heap_alloc", mem.HeapAlloc),
		logging.Uint64("sys", mem.Sys))
	return apperrors.ExitSuccess
}

// writeMetrics exports the run counters when a metrics file is configured.
// A failed export is logged and does not change the exit code.
func (a *Application) writeMetrics(stats *metrics.RunStats) {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := stats.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Warn("could not write metrics file",
			logging.String("path", a.Config.MetricsFile),
			logging.Err(err))
		return
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}

func openWorkbook(dir string) (orchestration.Accumulator, error) {
	wb, err := workbook.Create(filepath.Join(dir, workbook.FileName))
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, pflag.ErrHelp)
}
