// Package summary turns loaded result samples into one row of descriptive
// statistics per file, orders the rows and reads and writes them as CSV.
package summary

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agbru/sleepstat/internal/results"
)

// Row is the summary of one result file. All durations are nanoseconds.
type Row struct {
	Name        string
	RequestedNs float64
	MeanNs      float64
	StdDevNs    float64
	MinNs       float64
	MaxNs       float64
	MeanErrorNs float64
}

// Summarize computes the mean, sample standard deviation (N-1 denominator),
// minimum and maximum of the sample's Difference column. A single row gives
// a NaN standard deviation; an empty sample gives NaN for every statistic.
func Summarize(f results.ResultFile, s results.RawSample) Row {
	requested := f.RequestedNs()
	row := Row{
		Name:        f.Name,
		RequestedNs: requested,
		MeanNs:      math.NaN(),
		StdDevNs:    math.NaN(),
		MinNs:       math.NaN(),
		MaxNs:       math.NaN(),
		MeanErrorNs: math.NaN(),
	}
	if len(s.Difference) == 0 {
		return row
	}

	row.MeanNs, row.StdDevNs = stat.MeanStdDev(s.Difference, nil)
	if len(s.Difference) == 1 {
		row.StdDevNs = math.NaN()
	}
	row.MinNs = floats.Min(s.Difference)
	row.MaxNs = floats.Max(s.Difference)
	row.MeanErrorNs = row.MeanNs - requested
	return row
}

// Sort orders rows in place by RequestedNs, then Name, keeping the input
// order of rows that compare equal.
func Sort(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(a.RequestedNs, b.RequestedNs); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}
