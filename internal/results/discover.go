package results

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/agbru/sleepstat/internal/errors"
)

// csvExtension is the only extension Discover considers. The comparison is
// case-sensitive.
const csvExtension = "csv"

// ResultFile is one benchmark result file whose name carries a requested
// sleep duration.
type ResultFile struct {
	// Name is the base file name, e.g. "sleep-100ms.csv".
	Name string
	// Path is the file's location, joined from the scanned directory and Name.
	Path string
	// RequestedAmount is the number before the unit in the name.
	RequestedAmount float64
	// RequestedUnit is the unit after the number in the name.
	RequestedUnit Unit
}

// RequestedNs returns the requested duration normalised to nanoseconds.
func (f ResultFile) RequestedNs() float64 {
	return f.RequestedAmount * UnitToNs[f.RequestedUnit]
}

// ScanResult is the outcome of scanning a results directory.
type ScanResult struct {
	// Files are the matching result files in directory-listing order.
	Files []ResultFile
	// Skipped are regular .csv files whose names carry no duration segment.
	Skipped []string
	// Entries is the number of directory entries examined.
	Entries int
}

// Discover lists the result files in dir. See Scan.
func Discover(dir string) ([]ResultFile, error) {
	res, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

// Scan lists dir and keeps the regular files (symlinks are followed) whose
// extension is exactly "csv" and whose name carries a duration segment.
// Files that do not qualify are left out without error. A missing or
// unlistable directory is reported as a ConfigurationError.
func Scan(dir string) (ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScanResult{}, apperrors.ConfigurationError{Path: dir, Cause: err}
	}

	res := ScanResult{Entries: len(entries)}
	for _, entry := range entries {
		name := entry.Name()
		if extension(name) != csvExtension {
			continue
		}
		path := filepath.Join(dir, name)
		if !isRegularFile(path) {
			continue
		}
		amount, unit, ok := ParseDuration(name)
		if !ok {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		res.Files = append(res.Files, ResultFile{
			Name:            name,
			Path:            path,
			RequestedAmount: amount,
			RequestedUnit:   unit,
		})
	}
	return res, nil
}

// extension returns the text after the last dot, or the whole name when
// there is no dot.
func extension(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
