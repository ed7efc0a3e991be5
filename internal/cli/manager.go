package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/extpack-labs/extpack/internal/branding"
	"github.com/extpack-labs/extpack/internal/config"
	"github.com/extpack-labs/extpack/internal/download"
	"github.com/extpack-labs/extpack/internal/folders"
	"github.com/extpack-labs/extpack/internal/lifecycle"
	"github.com/extpack-labs/extpack/internal/loader"
	"github.com/extpack-labs/extpack/internal/manifest"
	"github.com/extpack-labs/extpack/internal/version"
)

// newLogger builds the CLI logger. EXTPACK_DEBUG enables debug output.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if os.Getenv(branding.EnvVar("DEBUG")) != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// newManager wires a lifecycle manager from the user configuration.
// The caller must Close it.
func newManager() (*lifecycle.Manager, error) {
	hostStr := config.HostVersion()
	if hostStr == "" {
		return nil, fmt.Errorf("host version not configured; run '%s config set %s v<major>.<minor>.<patch>'",
			branding.CLIName(), config.KeyHostVersion)
	}
	host, err := version.Parse(hostStr)
	if err != nil {
		return nil, fmt.Errorf("parsing configured host version: %w", err)
	}

	logger := newLogger()
	httpClient := &http.Client{Timeout: config.HTTPTimeout()}

	fm := folders.New(config.Root(), logger)
	ld := loader.New(logger)

	defaults := []manifest.Catalog{{
		Name:      branding.DefaultCatalogName(),
		URI:       branding.DefaultCatalogURI(),
		RawURI:    branding.DefaultCatalogRawURI(),
		Deletable: false,
	}}

	m, err := lifecycle.New(host, fm, ld, defaults, logger,
		lifecycle.WithFetcher(manifest.NewFetcher(manifest.WithHTTPClient(httpClient))),
		lifecycle.WithDownloader(download.New(download.WithHTTPClient(httpClient))),
	)
	if err != nil {
		_ = fm.Close()
		_ = ld.Close()
		return nil, fmt.Errorf("initializing lifecycle manager: %w", err)
	}
	return m, nil
}

// findExtension fetches a catalog's manifest and locates one extension.
func findExtension(ctx context.Context, m *lifecycle.Manager, catalogName, extensionName string) (manifest.Catalog, manifest.Extension, error) {
	var cat manifest.Catalog
	found := false
	for _, c := range m.Catalogs().Snapshot() {
		if c.Name == catalogName {
			cat = c
			found = true
			break
		}
	}
	if !found {
		return manifest.Catalog{}, manifest.Extension{}, fmt.Errorf("catalog %q is not a saved catalog", catalogName)
	}

	man, err := manifest.NewFetcher(manifest.WithHTTPClient(&http.Client{Timeout: config.HTTPTimeout()})).
		Fetch(ctx, cat.RawURI)
	if err != nil {
		return manifest.Catalog{}, manifest.Extension{}, fmt.Errorf("fetching catalog %q: %w", catalogName, err)
	}
	for _, ext := range man.Extensions {
		if ext.Name == extensionName {
			return cat, ext, nil
		}
	}
	return manifest.Catalog{}, manifest.Extension{}, fmt.Errorf("extension %q not found in catalog %q", extensionName, catalogName)
}
