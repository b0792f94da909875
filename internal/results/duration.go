package results

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit is the time unit encoded in a result filename.
type Unit string

// Supported filename units.
const (
	Seconds      Unit = "s"
	Milliseconds Unit = "ms"
	Microseconds Unit = "us"
	Nanoseconds  Unit = "ns"
)

// UnitToNs is the number of nanoseconds in one of each unit.
var UnitToNs = map[Unit]float64{
	Seconds:      1e9,
	Milliseconds: 1e6,
	Microseconds: 1e3,
	Nanoseconds:  1,
}

// durationPattern matches the "-<digits><unit>." segment of a result file
// name. The trailing "s" of the unit is case-insensitive.
var durationPattern = regexp.MustCompile(`-([0-9]+)([mun]?[sS])\.`)

// ParseDuration extracts the requested duration from a result filename such
// as "sleep-100ms.csv". It reports ok=false when the name has no duration
// segment.
func ParseDuration(name string) (amount float64, unit Unit, ok bool) {
	m := durationPattern.FindStringSubmatch(name)
	if len(m) != 3 {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return amount, Unit(strings.ToLower(m[2])), true
}
