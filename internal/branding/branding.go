// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, and Go's //go:embed bakes
// it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName              string `yaml:"cli_name"`
	DisplayName          string `yaml:"display_name"`
	Description          string `yaml:"description"`
	HomeDir              string `yaml:"home_dir"`
	EnvPrefix            string `yaml:"env_prefix"`
	GoModule             string `yaml:"go_module"`
	GitHubRepo           string `yaml:"github_repo"`
	DefaultCatalogName   string `yaml:"default_catalog_name"`
	DefaultCatalogURI    string `yaml:"default_catalog_uri"`
	DefaultCatalogRawURI string `yaml:"default_catalog_raw_uri"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:              "extpack",
			DisplayName:          "ExtPack",
			Description:          "Extension catalog and lifecycle manager for the host application",
			HomeDir:              ".extpack",
			EnvPrefix:            "EXTPACK",
			GoModule:             "github.com/extpack-labs/extpack",
			GitHubRepo:           "extpack-labs/extpack",
			DefaultCatalogName:   "Official",
			DefaultCatalogURI:    "https://extpack-labs.github.io/catalog",
			DefaultCatalogRawURI: "https://extpack-labs.github.io/catalog/catalog.json",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "extpack").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "ExtPack").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".extpack").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "EXTPACK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by scripts, not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DefaultCatalogName returns the name of the built-in, non-deletable catalog.
func DefaultCatalogName() string { load(); return defaults.DefaultCatalogName }

// DefaultCatalogURI returns the display URI of the built-in catalog.
func DefaultCatalogURI() string { load(); return defaults.DefaultCatalogURI }

// DefaultCatalogRawURI returns the manifest location of the built-in catalog.
func DefaultCatalogRawURI() string { load(); return defaults.DefaultCatalogRawURI }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("ROOT") → "EXTPACK_ROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
