package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/extpack-labs/extpack/internal/manifest"
)

const manifestTemplate = "templates/catalog.json.tmpl"

// Data holds the template variables for a generated catalog manifest.
type Data struct {
	CatalogName    string // e.g., "Acme Extensions"
	Description    string // Human-readable catalog description
	ExtensionName  string // Name of the example extension entry
	ReleaseName    string // e.g., "v0.1.0"
	BaseURL        string // Download URL prefix for release files
	MinHostVersion string // Lowest host version the example release supports
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputPath string
	Warnings   []string
}

// NewData creates a Data with sensible defaults for everything the
// caller did not decide yet.
func NewData(catalogName, baseURL string) *Data {
	return &Data{
		CatalogName:    catalogName,
		Description:    fmt.Sprintf("%s extension catalog", catalogName),
		ExtensionName:  "example-extension",
		ReleaseName:    "v0.1.0",
		BaseURL:        baseURL,
		MinHostVersion: "v1.0.0",
	}
}

// Generate renders the manifest template into outPath. An existing file
// is never overwritten. The generated manifest is validated against the
// catalog schema; issues become warnings, not errors, since the author
// is expected to edit the skeleton anyway.
func Generate(data *Data, outPath string) (*Result, error) {
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}

	tmplBytes, err := templateFS.ReadFile(manifestTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading manifest template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(manifestTemplate)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing manifest template: %w", err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{OutputPath: outPath}

	valResult, valErr := manifest.Validate(buf.Bytes())
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not validate generated manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
