package summary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/sleepstat/internal/errors"
)

// FileName is the summary file written into the results directory.
const FileName = "all-summary.csv"

// Header is the column set of the summary CSV, in order.
var Header = []string{
	"Name",
	"Requested ns",
	"Mean ns",
	"Standard Deviation ns",
	"Minimum ns",
	"Maximum ns",
	"Mean Error ns",
}

// Finalize sorts a copy of rows and writes it to FileName inside dir,
// replacing any existing file. It returns the sorted rows and the path written.
func Finalize(rows []Row, dir string) ([]Row, string, error) {
	sorted := slices.Clone(rows)
	Sort(sorted)

	path := filepath.Join(dir, FileName)
	if err := WriteFile(path, sorted); err != nil {
		return nil, "", err
	}
	return sorted, path, nil
}

// WriteFile writes rows as CSV to path, truncating an existing file.
func WriteFile(path string, rows []Row) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.FilesystemError{Op: "create", Path: path, Cause: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.FilesystemError{Op: "close", Path: path, Cause: cerr}
		}
	}()

	if err := WriteCSV(file, rows); err != nil {
		return apperrors.FilesystemError{Op: "write", Path: path, Cause: err}
	}
	return nil
}

// WriteCSV writes the header and one record per row to w. There is no index
// column.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			FormatFloat(r.RequestedNs),
			FormatFloat(r.MeanNs),
			FormatFloat(r.StdDevNs),
			FormatFloat(r.MinNs),
			FormatFloat(r.MaxNs),
			FormatFloat(r.MeanErrorNs),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a summary previously produced by WriteCSV. Empty fields
// read back as NaN.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading summary header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("unexpected summary header %q", header)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			if values[i], err = parseFloat(field); err != nil {
				line, _ := cr.FieldPos(i + 1)
				return nil, fmt.Errorf("line %d, column %q: %w", line, Header[i+1], err)
			}
		}
		rows = append(rows, Row{
			Name:        record[0],
			RequestedNs: values[0],
			MeanNs:      values[1],
			StdDevNs:    values[2],
			MinNs:       values[3],
			MaxNs:       values[4],
			MeanErrorNs: values[5],
		})
	}
}

// FormatFloat renders v the way the summary has always been written: the
// shortest representation that round-trips, with ".0" on integral values,
// exponent notation below 1e-4 and from 1e16, and NaN as an empty field.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
