package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// The theme is package state, so these tests do not run in parallel.

func TestInitTheme(t *testing.T) {
	saved := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(saved) })

	tests := []struct {
		name    string
		noColor bool
		env     bool
		want    string
	}{
		{"colors by default", false, false, "dark"},
		{"flag disables colors", true, false, "none"},
		{"NO_COLOR disables colors", false, true, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			if !tt.env {
				os.Unsetenv("NO_COLOR")
			}
			InitTheme(tt.noColor)
			if got := GetCurrentTheme().Name; got != tt.want {
				t.Errorf("theme = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorFunctions_NoColor(t *testing.T) {
	saved := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(saved) })

	SetCurrentTheme(NoColorTheme)
	for name, fn := range map[string]func() string{
		"reset": ColorReset, "red": ColorRed, "green": ColorGreen,
		"yellow": ColorYellow, "blue": ColorBlue, "magenta": ColorMagenta,
		"cyan": ColorCyan, "bold": ColorBold, "underline": ColorUnderline,
	} {
		if got := fn(); got != "" {
			t.Errorf("%s = %q, want empty without colors", name, got)
		}
	}
	if _, ok := GetCurrentTableTheme().Header.(lipgloss.NoColor); !ok {
		t.Error("table theme should use NoColor when colors are disabled")
	}
}

func TestColorFunctions_Dark(t *testing.T) {
	saved := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(saved) })

	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || ColorReset() != "\033[0m" {
		t.Error("color functions should follow the active theme")
	}
	if GetCurrentTableTheme() != DarkTableTheme {
		t.Error("dark theme should select the dark table theme")
	}
}
