package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/extpack-labs/extpack/internal/faults"
)

// writeZip creates a zip file with the given entry names and bodies.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range entries {
		ew, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ew.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtract(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "bundle.zip")
	writeZip(t, zipPath, map[string]string{
		"readme.txt":       "hello",
		"lib/nested/a.jar": "jarbytes",
	})

	dest := filepath.Join(tmp, "out")
	var fractions []float64
	err := Extract(context.Background(), zipPath, dest, func(f float64) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "readme.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("readme.txt = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dest, "lib", "nested", "a.jar")); err != nil {
		t.Errorf("nested entry missing: %v", err)
	}

	if len(fractions) != 2 {
		t.Fatalf("progress calls = %d, want 2", len(fractions))
	}
	if fractions[0] != 0.5 || fractions[1] != 1 {
		t.Errorf("progress = %v, want [0.5 1]", fractions)
	}
}

func TestExtractZipSlip(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../evil.txt": "gotcha",
	})

	dest := filepath.Join(tmp, "out")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}

	err := Extract(context.Background(), zipPath, dest, nil)
	if err == nil {
		t.Fatal("expected security error, got nil")
	}
	if !faults.IsSecurity(err) {
		t.Errorf("error kind = %v, want security", faults.KindOf(err))
	}
	if _, statErr := os.Stat(filepath.Join(tmp, "evil.txt")); !os.IsNotExist(statErr) {
		t.Errorf("file escaped the destination folder")
	}
}

func TestExtractCanceled(t *testing.T) {
	tmp := t.TempDir()
	zipPath := filepath.Join(tmp, "bundle.zip")
	writeZip(t, zipPath, map[string]string{"a.txt": "data"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Extract(ctx, zipPath, filepath.Join(tmp, "out"), nil)
	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
	if !faults.IsCanceled(err) {
		t.Errorf("error kind = %v, want canceled", faults.KindOf(err))
	}
}

func TestExtractMissingArchive(t *testing.T) {
	err := Extract(context.Background(), filepath.Join(t.TempDir(), "nope.zip"), t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !faults.IsIO(err) {
		t.Errorf("error kind = %v, want io", faults.KindOf(err))
	}
}

func TestIsZip(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"bundle.zip", true},
		{"BUNDLE.ZIP", true},
		{"lib.jar", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := IsZip(tt.path); got != tt.want {
			t.Errorf("IsZip(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
