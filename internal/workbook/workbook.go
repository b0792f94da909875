// Package workbook writes the optional accumulated workbook: one sheet per
// result file holding its raw rows and the derived Difference column.
package workbook

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/agbru/sleepstat/internal/errors"
	"github.com/agbru/sleepstat/internal/results"
)

// FileName is the workbook written into the results directory.
const FileName = "all.xlsx"

// MaxSheetNameLength is the longest sheet name spreadsheet applications accept.
const MaxSheetNameLength = 31

const (
	defaultSheet       = "Sheet1"
	invalidSheetRunes  = `:\/?*[]`
	fallbackSheetName  = "Sheet"
	sheetSuffixPattern = "~%d"
)

// Workbook accumulates one sheet per result file. The target file is
// created (truncated) by Create and written once by Close.
type Workbook struct {
	path   string
	out    *os.File
	file   *excelize.File
	taken  map[string]struct{}
	sheets []string
	closed bool
}

// Create truncates or creates path and returns an empty workbook bound to it.
func Create(path string) (*Workbook, error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, apperrors.FilesystemError{Op: "create", Path: path, Cause: err}
	}
	return &Workbook{
		path:  path,
		out:   out,
		file:  excelize.NewFile(),
		taken: make(map[string]struct{}),
	}, nil
}

// Path returns the file the workbook is written to.
func (w *Workbook) Path() string { return w.path }

// Sheets returns the sheet names added so far, in order.
func (w *Workbook) Sheets() []string { return slices.Clone(w.sheets) }

// AddSection writes sample as a new sheet named after name. The sheet holds
// the file's header and records followed by the Difference column.
func (w *Workbook) AddSection(name string, sample results.RawSample) error {
	if w.closed {
		return fmt.Errorf("workbook %s: add section %q after close", w.path, name)
	}
	sheet := w.claimSheetName(name)

	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(defaultSheet, sheet); err != nil {
			return apperrors.WrapError(err, "rename sheet for %s", name)
		}
	} else if _, err := w.file.NewSheet(sheet); err != nil {
		return apperrors.WrapError(err, "add sheet for %s", name)
	}
	w.sheets = append(w.sheets, sheet)

	sw, err := w.file.NewStreamWriter(sheet)
	if err != nil {
		return apperrors.WrapError(err, "open sheet %q", sheet)
	}

	header := lo.Map(append(slices.Clone(sample.Header), results.DifferenceColumn), func(h string, _ int) any { return h })
	if err := sw.SetRow("A1", header); err != nil {
		return apperrors.WrapError(err, "write header of sheet %q", sheet)
	}
	for i, record := range sample.Records {
		cells := lo.Map(record, func(v string, _ int) any { return cellValue(v) })
		cells = append(cells, sample.Difference[i])

		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(ref, cells); err != nil {
			return apperrors.WrapError(err, "write row %d of sheet %q", i+2, sheet)
		}
	}
	if err := sw.Flush(); err != nil {
		return apperrors.WrapError(err, "flush sheet %q", sheet)
	}
	return nil
}

// Close writes the workbook to its file and releases it. A workbook without
// sections keeps its empty default sheet, since a spreadsheet needs at least
// one. Calling Close more than once is a no-op.
func (w *Workbook) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	writeErr := w.file.Write(w.out)
	closeErr := w.out.Close()
	_ = w.file.Close()

	if writeErr != nil {
		return apperrors.FilesystemError{Op: "save", Path: w.path, Cause: writeErr}
	}
	if closeErr != nil {
		return apperrors.FilesystemError{Op: "close", Path: w.path, Cause: closeErr}
	}
	return nil
}

// claimSheetName returns a valid sheet name for name that no earlier sheet
// uses, comparing case-insensitively.
func (w *Workbook) claimSheetName(name string) string {
	base := SanitizeSheetName(name)
	candidate := base
	for n := 2; w.isTaken(candidate); n++ {
		suffix := fmt.Sprintf(sheetSuffixPattern, n)
		candidate = truncateRunes(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	w.taken[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (w *Workbook) isTaken(name string) bool {
	_, ok := w.taken[strings.ToLower(name)]
	return ok
}

// SanitizeSheetName maps name onto the sheet-name rules: no : \ / ? * [ ],
// no leading or trailing apostrophe, at most MaxSheetNameLength runes.
// Offending runes become underscores.
func SanitizeSheetName(name string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetRunes, r) {
			return '_'
		}
		return r
	}, name)
	s = truncateRunes(s, MaxSheetNameLength)
	if s == "" {
		return fallbackSheetName
	}
	if strings.HasPrefix(s, "'") {
		s = "_" + s[1:]
	}
	if strings.HasSuffix(s, "'") {
		s = s[:len(s)-1] + "_"
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// cellValue stores numeric text as a number and everything else verbatim.
// Empty cells stay blank.
func cellValue(v string) any {
	t := strings.TrimSpace(v)
	if t == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return v
}
