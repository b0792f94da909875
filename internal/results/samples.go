package results

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	apperrors "github.com/agbru/sleepstat/internal/errors"
)

// Column names read from every result file.
const (
	StartColumn      = "Start"
	EndColumn        = "End"
	DifferenceColumn = "Difference ns"
)

const utf8BOM = "\ufeff"

// RawSample holds the rows of one result file. Header and Records are kept
// verbatim for the workbook; Start, End and Difference are the parsed
// timing columns, one entry per record.
type RawSample struct {
	Header     []string
	Records    [][]string
	Start      []float64
	End        []float64
	Difference []float64
}

// Len returns the number of data rows.
func (s RawSample) Len() int { return len(s.Records) }

// LoadSamples reads the CSV at f.Path and derives Difference = End - Start
// for every row. Start and End must be present in the header and every value
// in them must be a finite number; anything else is a DataFormatError.
func LoadSamples(f ResultFile) (RawSample, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return RawSample{}, apperrors.FilesystemError{Op: "open", Path: f.Path, Cause: err}
	}
	defer file.Close()

	return ReadSamples(file, f.Path)
}

// ReadSamples parses result rows from r. path is used only in error messages.
func ReadSamples(r io.Reader, path string) (RawSample, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return RawSample{}, apperrors.DataFormatError{Path: path, Message: "file is empty"}
	}
	if err != nil {
		return RawSample{}, csvError(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	startIdx, endIdx := lo.IndexOf(header, StartColumn), lo.IndexOf(header, EndColumn)
	if startIdx < 0 {
		return RawSample{}, missingColumn(path, StartColumn)
	}
	if endIdx < 0 {
		return RawSample{}, missingColumn(path, EndColumn)
	}

	sample := RawSample{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RawSample{}, csvError(path, err)
		}
		line, _ := reader.FieldPos(0)

		start, err := parseCell(record[startIdx], path, line, StartColumn)
		if err != nil {
			return RawSample{}, err
		}
		end, err := parseCell(record[endIdx], path, line, EndColumn)
		if err != nil {
			return RawSample{}, err
		}
		sample.Records = append(sample.Records, record)
		sample.Start = append(sample.Start, start.value)
		sample.End = append(sample.End, end.value)
		sample.Difference = append(sample.Difference, difference(start, end))
	}

	if sample.Difference == nil {
		sample.Difference = []float64{}
	}
	return sample, nil
}

// timestamp is one parsed Start or End cell. Integer cells keep their exact
// 64-bit pattern so epoch nanoseconds subtract without float64 rounding.
type timestamp struct {
	value float64
	bits  int64
	exact bool
}

// difference returns end - start. Two integer cells are subtracted in
// wrapping 64-bit arithmetic, which is exact whenever the true difference
// fits in an int64, including uint64 values above math.MaxInt64.
func difference(start, end timestamp) float64 {
	if start.exact && end.exact {
		return float64(end.bits - start.bits)
	}
	return end.value - start.value
}

func parseCell(raw, path string, line int, column string) (timestamp, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return timestamp{}, apperrors.DataFormatError{Path: path, Row: line, Column: column, Message: "empty value"}
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return timestamp{value: float64(i), bits: i, exact: true}, nil
	}
	if u, err := strconv.ParseUint(v, 10, 64); err == nil {
		return timestamp{value: float64(u), bits: int64(u), exact: true}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return timestamp{}, apperrors.DataFormatError{Path: path, Row: line, Column: column, Message: "value is not numeric", Cause: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return timestamp{}, apperrors.DataFormatError{Path: path, Row: line, Column: column, Message: "value is not a finite number"}
	}
	return timestamp{value: f}, nil
}

func missingColumn(path, column string) error {
	return apperrors.DataFormatError{Path: path, Row: 1, Column: column, Message: "missing required column"}
}

func csvError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return apperrors.DataFormatError{Path: path, Row: perr.StartLine, Message: "malformed CSV", Cause: perr.Err}
	}
	return apperrors.FilesystemError{Op: "read", Path: path, Cause: err}
}
