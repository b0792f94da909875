package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/agbru/sleepstat/internal/metrics"
	"github.com/agbru/sleepstat/internal/orchestration"
	"github.com/agbru/sleepstat/internal/summary"
	"github.com/agbru/sleepstat/internal/ui"
)

func withoutColors(t *testing.T) {
	t.Helper()
	saved := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
}

func TestFormatSummaryTable(t *testing.T) {
	withoutColors(t)
	rows := []summary.Row{
		{Name: "sleep-5ns.csv", RequestedNs: 5, MeanNs: 6.666666, StdDevNs: 2.886751, MinNs: 5, MaxNs: 10, MeanErrorNs: 1.666666},
		{Name: "sleep-100ms.csv", RequestedNs: 1e8, MeanNs: 100050000, StdDevNs: math.NaN(), MinNs: 100040000, MaxNs: 100060000, MeanErrorNs: 50000},
	}

	got := FormatSummaryTable(rows)
	for _, want := range []string{
		"Name", "Requested", "Mean Error",
		"sleep-5ns.csv", "6.67ns", "2.89ns",
		"sleep-100ms.csv", "100ms", "100.05ms", "n/a", "50µs",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table should contain %q, got:\n%s", want, got)
		}
	}
	if strings.Index(got, "sleep-5ns.csv") > strings.Index(got, "sleep-100ms.csv") {
		t.Error("table should keep row order")
	}
}

func TestDisplaySummaryTable_Empty(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	DisplaySummaryTable(&buf, nil)
	if got := buf.String(); got != "No result files found.\n" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayOutcome(t *testing.T) {
	withoutColors(t)
	stats := metrics.NewRunStats()
	stats.RecordFile(3)
	stats.RecordFile(2)
	stats.Finish()
	withSkipped := metrics.NewRunStats()
	withSkipped.RecordScan(4, 1, 3)
	withSkipped.RecordFile(1)
	withSkipped.Finish()

	testCases := []struct {
		name     string
		outcome  orchestration.Outcome
		contains []string
		excludes []string
	}{
		{
			name:     "summary only",
			outcome:  orchestration.Outcome{SummaryPath: "../results/all-summary.csv", Stats: stats},
			contains: []string{"Summary written to: ../results/all-summary.csv", "Processed 2 files (5 rows)"},
			excludes: []string{"Workbook", "Skipped"},
		},
		{
			name:     "skipped entries",
			outcome:  orchestration.Outcome{SummaryPath: "s.csv", Stats: withSkipped},
			contains: []string{"Processed 1 files (1 rows)", "Skipped 3 entries without a requested duration"},
		},
		{
			name:     "with workbook",
			outcome:  orchestration.Outcome{SummaryPath: "s.csv", WorkbookPath: "../results/all.xlsx"},
			contains: []string{"Summary written to: s.csv", "Workbook written to: ../results/all.xlsx"},
			excludes: []string{"Processed"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayOutcome(&buf, tc.outcome)
			out := buf.String()
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output should contain %q, got:\n%s", s, out)
				}
			}
			for _, s := range tc.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q, got:\n%s", s, out)
				}
			}
		})
	}
}

func TestDisplayOutcome_Colors(t *testing.T) {
	saved := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.DarkTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })

	stats := metrics.NewRunStats()
	stats.RecordScan(2, 1, 1)
	stats.Finish()

	var buf bytes.Buffer
	DisplayOutcome(&buf, orchestration.Outcome{SummaryPath: "s.csv", Stats: stats})
	out := buf.String()

	if !strings.Contains(out, ui.DarkTheme.Underline+"s.csv"+ui.DarkTheme.Reset) {
		t.Errorf("summary path should be underlined, got %q", out)
	}
	if !strings.Contains(out, ui.DarkTheme.Info+"Skipped 1 entries") {
		t.Errorf("skipped count should use the info color, got %q", out)
	}
}
