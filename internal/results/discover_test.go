package results

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/agbru/sleepstat/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	for _, name := range []string{
		"sleep-100ms.csv",
		"sleep-1s.csv",
		"sleep-250us.csv",
		"sleep-5ns.csv",
		"readme.csv",
		"notes.txt",
		"sleep-10ms.CSV",
		"sleep-10ms.csv.bak",
	} {
		writeFile(t, filepath.Join(dir, name), "Start,End\n0,1\n")
	}
	if err := os.Mkdir(filepath.Join(dir, "old-5ms.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := map[string]float64{
		"sleep-100ms.csv": 100e6,
		"sleep-1s.csv":    1e9,
		"sleep-250us.csv": 250e3,
		"sleep-5ns.csv":   5,
	}
	if len(res.Files) != len(want) {
		t.Fatalf("Scan found %d files, want %d: %+v", len(res.Files), len(want), res.Files)
	}
	for _, f := range res.Files {
		ns, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected file %q", f.Name)
			continue
		}
		if f.RequestedNs() != ns {
			t.Errorf("%s: RequestedNs = %v, want %v", f.Name, f.RequestedNs(), ns)
		}
		if f.Path != filepath.Join(dir, f.Name) {
			t.Errorf("%s: Path = %q", f.Name, f.Path)
		}
	}

	if len(res.Skipped) != 1 || res.Skipped[0] != "readme.csv" {
		t.Errorf("Skipped = %v, want [readme.csv]", res.Skipped)
	}
	if res.Entries != 9 {
		t.Errorf("Entries = %d, want 9", res.Entries)
	}
}

func TestScan_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, target, "Start,End\n0,1\n")

	if err := os.Symlink(target, filepath.Join(dir, "linked-3ms.csv")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling-4ms.csv")); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "linked-3ms.csv" {
		t.Errorf("Discover = %+v, want only linked-3ms.csv", files)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain-1s.csv")
	writeFile(t, plain, "")

	tests := []struct {
		name string
		dir  string
	}{
		{"missing directory", filepath.Join(dir, "nope")},
		{"path is a file", plain},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Discover(tt.dir)
			var cfgErr apperrors.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Path != tt.dir {
				t.Errorf("ConfigurationError.Path = %q, want %q", cfgErr.Path, tt.dir)
			}
		})
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	t.Parallel()
	files, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}
