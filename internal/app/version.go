package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version information, set at build time with
// -ldflags "-X github.com/agbru/sleepstat/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so --version works alongside any other flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "%s %s (commit %s, built %s, %s %s/%s)\n",
		programName, Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
