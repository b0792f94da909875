// Package ui provides theme and color support for the terminal output.
// It defines the ANSI color scheme used for progress lines and messages and
// the lipgloss colors used by the summary table. Colors are disabled when
// NO_COLOR is set.
package ui
