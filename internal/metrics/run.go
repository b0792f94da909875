// Package metrics collects counters for a single aggregation run.
package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "sleepstat"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use by application
	Sys       uint64 // total bytes obtained from OS
	NumGC     uint32 // number of completed GC cycles
}

// ReadMemory reads current memory statistics.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc: m.HeapAlloc,
		Sys:       m.Sys,
		NumGC:     m.NumGC,
	}
}

// RunStats counts what a pipeline run saw and did. The counters live in a
// private Prometheus registry so a finished run can be exported in the text
// exposition format. A nil *RunStats is valid and records nothing.
type RunStats struct {
	registry *prometheus.Registry

	entries   prometheus.Counter
	matched   prometheus.Counter
	skipped   prometheus.Counter
	processed prometheus.Counter
	rows      prometheus.Counter
	sheets    prometheus.Counter
	duration  prometheus.Gauge

	started  time.Time
	finished time.Time
	memory   MemorySnapshot
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// NewRunStats returns counters with the start time set to now.
func NewRunStats() *RunStats {
	s := &RunStats{
		registry:  prometheus.NewRegistry(),
		entries:   newCounter("scanned_entries_total", "Directory entries scanned."),
		matched:   newCounter("matched_files_total", "Result files whose name encoded a duration."),
		skipped:   newCounter("skipped_entries_total", "Directory entries ignored by discovery."),
		processed: newCounter("processed_files_total", "Result files summarized."),
		rows:      newCounter("rows_total", "Data rows read from result files."),
		sheets:    newCounter("workbook_sheets_total", "Workbook sheets written."),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the aggregation run.",
		}),
		started: time.Now(),
	}
	s.registry.MustRegister(s.entries, s.matched, s.skipped, s.processed, s.rows, s.sheets, s.duration)
	return s
}

// Registry exposes the run's counters, or nil for nil stats.
func (s *RunStats) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// RecordScan adds the discovery totals.
func (s *RunStats) RecordScan(entries, matched, skipped int) {
	if s == nil {
		return
	}
	s.entries.Add(float64(entries))
	s.matched.Add(float64(matched))
	s.skipped.Add(float64(skipped))
}

// RecordFile counts one summarized file and its rows.
func (s *RunStats) RecordFile(rows int) {
	if s == nil {
		return
	}
	s.processed.Inc()
	s.rows.Add(float64(rows))
}

// RecordSheet counts one workbook sheet.
func (s *RunStats) RecordSheet() {
	if s == nil {
		return
	}
	s.sheets.Inc()
}

// Entries returns the number of directory entries scanned.
func (s *RunStats) Entries() int {
	if s == nil {
		return 0
	}
	return counterValue(s.entries)
}

// Matched returns the number of result files found.
func (s *RunStats) Matched() int {
	if s == nil {
		return 0
	}
	return counterValue(s.matched)
}

// Skipped returns the number of entries ignored by discovery.
func (s *RunStats) Skipped() int {
	if s == nil {
		return 0
	}
	return counterValue(s.skipped)
}

// Processed returns the number of result files summarized.
func (s *RunStats) Processed() int {
	if s == nil {
		return 0
	}
	return counterValue(s.processed)
}

// Rows returns the total number of data rows read.
func (s *RunStats) Rows() int {
	if s == nil {
		return 0
	}
	return counterValue(s.rows)
}

// Sheets returns the number of workbook sheets written.
func (s *RunStats) Sheets() int {
	if s == nil {
		return 0
	}
	return counterValue(s.sheets)
}

func counterValue(c prometheus.Counter) int {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return int(m.GetCounter().GetValue())
}

// Finish stops the clock and takes a memory reading. Only the first call
// has an effect.
func (s *RunStats) Finish() {
	if s == nil || !s.finished.IsZero() {
		return
	}
	s.finished = time.Now()
	s.memory = ReadMemory()
	s.duration.Set(s.finished.Sub(s.started).Seconds())
}

// Elapsed returns the run duration, measured up to now if Finish was not
// called yet.
func (s *RunStats) Elapsed() time.Duration {
	if s == nil || s.started.IsZero() {
		return 0
	}
	if s.finished.IsZero() {
		return time.Since(s.started)
	}
	return s.finished.Sub(s.started)
}

// Memory returns the reading taken by Finish.
func (s *RunStats) Memory() MemorySnapshot {
	if s == nil {
		return MemorySnapshot{}
	}
	return s.memory
}

// WriteTextfile writes the run's metrics to path in the Prometheus text
// format, for the node exporter textfile collector. The file is replaced
// atomically.
func (s *RunStats) WriteTextfile(path string) error {
	if s == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, s.registry)
}
