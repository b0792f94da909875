package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/sleepstat into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "sleepstat"
	if runtime.GOOS == "windows" {
		binName = "sleepstat.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs in test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/sleepstat")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build sleepstat: %v", err)
	}
	return binPath
}

// newWorkspace lays out <tmp>/work and <tmp>/results so that the default
// ../results/ directory resolves from the working directory.
func newWorkspace(t *testing.T, withResults bool) (workDir, resultsDir string) {
	t.Helper()
	root := t.TempDir()
	workDir = filepath.Join(root, "work")
	resultsDir = filepath.Join(root, "results")
	if err := os.Mkdir(workDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if !withResults {
		return workDir, resultsDir
	}
	if err := os.Mkdir(resultsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"sleep-1ms.csv":   "Iteration,Start,End\n0,0,1050000\n1,2000000,3070000\n",
		"sleep-10us.csv":  "Iteration,Start,End\n0,0,10500\n",
		"sleep-1S.csv":    "Iteration,Start,End\n0,0,1000100000\n",
		"description.txt": "machine: test\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(resultsDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return workDir, resultsDir
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name        string
		args        []string
		withResults bool
		wantOut     string // substring match (case-insensitive)
		wantCode    int
		wantFiles   []string
		absentFiles []string
	}{
		{
			name:        "Summary",
			withResults: true,
			wantOut:     "sleep-10us.csv",
			wantCode:    0,
			wantFiles:   []string{"all-summary.csv"},
			absentFiles: []string{"all.xlsx"},
		},
		{
			name:        "Accumulate",
			args:        []string{"--accumulate"},
			withResults: true,
			wantOut:     "workbook written",
			wantCode:    0,
			wantFiles:   []string{"all-summary.csv", "all.xlsx"},
		},
		{
			name:        "Accumulate Short Flag",
			args:        []string{"-a"},
			withResults: true,
			wantOut:     "all.xlsx",
			wantCode:    0,
			wantFiles:   []string{"all.xlsx"},
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "sleepstat",
			wantCode: 0,
		},
		{
			name:     "Missing Results Directory",
			wantOut:  "results directory",
			wantCode: 2,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--bogus"},
			wantOut:  "unknown flag",
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, resultsDir := newWorkspace(t, tt.withResults)

			cmd := exec.Command(binPath, tt.args...)
			cmd.Dir = workDir
			cmd.Env = append(os.Environ(), "NO_COLOR=1", "SLEEPSTAT_ACCUMULATE=", "SLEEPSTAT_METRICS_FILE=")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Command failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
			for _, name := range tt.wantFiles {
				if _, err := os.Stat(filepath.Join(resultsDir, name)); err != nil {
					t.Errorf("expected %s to be written: %v", name, err)
				}
			}
			for _, name := range tt.absentFiles {
				if _, err := os.Stat(filepath.Join(resultsDir, name)); !os.IsNotExist(err) {
					t.Errorf("%s should not exist (stat err %v)", name, err)
				}
			}
		})
	}
}

// TestCLI_E2E_SummaryContent checks the summary CSV byte for byte.
func TestCLI_E2E_SummaryContent(t *testing.T) {
	binPath := buildBinary(t)
	workDir, resultsDir := newWorkspace(t, true)

	cmd := exec.Command(binPath)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "SLEEPSTAT_ACCUMULATE=", "SLEEPSTAT_METRICS_FILE=")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	data, err := os.ReadFile(filepath.Join(resultsDir, "all-summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Name,Requested ns,Mean ns,Standard Deviation ns,Minimum ns,Maximum ns,Mean Error ns\n" +
		"sleep-10us.csv,10000.0,10500.0,,10500.0,10500.0,500.0\n" +
		"sleep-1ms.csv,1000000.0,1060000.0,14142.13562373095,1050000.0,1070000.0,60000.0\n" +
		"sleep-1S.csv,1000000000.0,1000100000.0,,1000100000.0,1000100000.0,100000.0\n"
	if string(data) != want {
		t.Errorf("summary mismatch\ngot:\n%s\nwant:\n%s", data, want)
	}
}
