// This file contains environment variable utilities for configuration override.

package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the SLEEPSTAT_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"ACCUMULATE", []string{"accumulate"}, func(c *AppConfig, v string) {
		c.Accumulate = parseBoolEnv(v, c.Accumulate)
	}},
	{"LOG_LEVEL", nil, func(c *AppConfig, v string) {
		c.LogLevel = strings.ToLower(v)
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) {
		c.MetricsFile = v
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// pflag tracks the long name for both spellings of a flag.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
