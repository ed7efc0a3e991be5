package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewData(t *testing.T) {
	d := NewData("Acme", "https://downloads.acme.dev")
	if d.CatalogName != "Acme" {
		t.Errorf("CatalogName = %q, want %q", d.CatalogName, "Acme")
	}
	if d.Description != "Acme extension catalog" {
		t.Errorf("Description = %q", d.Description)
	}
	if d.BaseURL != "https://downloads.acme.dev" {
		t.Errorf("BaseURL = %q", d.BaseURL)
	}
	if d.ReleaseName == "" || d.MinHostVersion == "" {
		t.Error("defaults should be populated")
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "catalog.json")

	result, err := Generate(NewData("Acme", "https://downloads.acme.dev"), out)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.OutputPath != out {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, out)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// The skeleton is well-formed JSON with the variables substituted.
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["name"] != "Acme" {
		t.Errorf("name = %v, want Acme", doc["name"])
	}
	exts, ok := doc["extensions"].([]any)
	if !ok || len(exts) != 1 {
		t.Fatalf("extensions = %v, want one entry", doc["extensions"])
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(out, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(NewData("Acme", "https://example.com"), out); err == nil {
		t.Fatal("expected error for existing output file")
	}
}

func TestGenerateCreatesParentDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "catalog.json")

	if _, err := Generate(NewData("Acme", "https://example.com"), out); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
