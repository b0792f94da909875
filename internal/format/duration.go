// Package format renders durations for terminal output.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

var nanosecondScales = []struct {
	limit  float64
	div    float64
	suffix string
}{
	{1e3, 1, "ns"},
	{1e6, 1e3, "µs"},
	{1e9, 1e6, "ms"},
}

// FormatNanoseconds renders a nanosecond quantity with the largest unit that
// keeps it at or above one, using at most two decimals: 100050000 becomes
// "100.05ms" and -50000 becomes "-50µs". NaN renders as "n/a".
func FormatNanoseconds(ns float64) string {
	switch {
	case math.IsNaN(ns):
		return "n/a"
	case math.IsInf(ns, 1):
		return "+Inf"
	case math.IsInf(ns, -1):
		return "-Inf"
	}

	for _, s := range nanosecondScales {
		if text, ok := scaled(ns, s.div, s.limit/s.div); ok {
			return trimDecimals(text) + s.suffix
		}
	}
	text, _ := scaled(ns, 1e9, math.Inf(1))
	return trimDecimals(text) + "s"
}

// scaled renders ns/div with two decimals and reports whether the rounded
// value stays below limit, so 999.996ns moves up to "1µs".
func scaled(ns, div, limit float64) (string, bool) {
	text := strconv.FormatFloat(ns/div, 'f', 2, 64)
	rounded, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text, false
	}
	return text, math.Abs(rounded) < limit
}

func trimDecimals(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
