// Package config defines the run configuration and parses it from command
// line flags and SLEEPSTAT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/sleepstat/internal/errors"
)

const (
	// DefaultResultsDir is where result files are read from and outputs are
	// written to, relative to the working directory.
	DefaultResultsDir = "../results/"
	// DefaultLogLevel is the structured log level when none is configured.
	DefaultLogLevel = "info"
	// EnvPrefix is the prefix of every environment override.
	EnvPrefix = "SLEEPSTAT_"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Accumulate also writes every result file into one workbook.
	Accumulate bool
	// ResultsDir is the directory holding the result files. It is not a flag;
	// only embedding callers and tests change it.
	ResultsDir string
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsFile, when set, receives the run counters in the Prometheus
	// text format once the run ends.
	MetricsFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		ResultsDir: DefaultResultsDir,
		LogLevel:   DefaultLogLevel,
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Values come from, highest priority first: flags, SLEEPSTAT_* environment
// variables, defaults. Help requests return pflag.ErrHelp; every other
// problem is an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorOutput, "Summarizes the sleep benchmark results in %s into %s.\n\n", DefaultResultsDir, "all-summary.csv")
		fmt.Fprintln(errorOutput, "Options:")
		fs.PrintDefaults()
		fmt.Fprintf(errorOutput, "\nEnvironment:\n  %sACCUMULATE   same as --accumulate (true/1/yes, false/0/no)\n  %sLOG_LEVEL    log verbosity (debug, info, warn, error)\n  %sMETRICS_FILE same as --metrics-file\n  NO_COLOR               disable colored output\n", EnvPrefix, EnvPrefix, EnvPrefix)
	}

	fs.BoolVarP(&cfg.Accumulate, "accumulate", "a", false, "also write every result file into all.xlsx, one sheet per file")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "write run counters to this file in Prometheus text format")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintf(errorOutput, "%v\n", err)
		fs.Usage()
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	return cfg, nil
}
