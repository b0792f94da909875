package format

import (
	"math"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"microseconds", 250 * time.Microsecond, "250µs"},
		{"milliseconds", 12 * time.Millisecond, "12ms"},
		{"seconds", 1500 * time.Millisecond, "1.5s"},
		{"zero", 0, "0µs"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tc.d); got != tc.expected {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.d, got, tc.expected)
			}
		})
	}
}

func TestFormatNanoseconds(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		ns       float64
		expected string
	}{
		{"zero", 0, "0ns"},
		{"fractional nanoseconds", 6.666666, "6.67ns"},
		{"microseconds", 1500, "1.5µs"},
		{"requested 100ms", 1e8, "100ms"},
		{"measured mean", 100050000, "100.05ms"},
		{"seconds", 2.5e9, "2.5s"},
		{"large seconds", 125e9, "125s"},
		{"negative error", -50000, "-50µs"},
		{"rounds up into microseconds", 999.996, "1µs"},
		{"stays in nanoseconds", 999.994, "999.99ns"},
		{"rounds up into milliseconds", 999999.5, "1ms"},
		{"rounds up into seconds", 999999999.9, "1s"},
		{"negative rounds up into microseconds", -999.996, "-1µs"},
		{"tiny negative rounds to zero", -0.001, "0ns"},
		{"NaN", math.NaN(), "n/a"},
		{"positive infinity", math.Inf(1), "+Inf"},
		{"negative infinity", math.Inf(-1), "-Inf"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatNanoseconds(tc.ns); got != tc.expected {
				t.Errorf("FormatNanoseconds(%v) = %q, want %q", tc.ns, got, tc.expected)
			}
		})
	}
}
