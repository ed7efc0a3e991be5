package lifecycle

import (
	"context"

	"github.com/extpack-labs/extpack/internal/version"
)

// UpdateAvailable reports that a newer compatible release exists for an
// installed extension.
type UpdateAvailable struct {
	Extension string
	Installed string
	Available string
}

// AvailableUpdates snapshots the saved catalog list, fetches every
// catalog's manifest, and reports each installed extension whose
// highest host-compatible release exceeds the installed one.
// Extensions that are not installed, already current, or whose catalog
// cannot be fetched (logged, skipped) yield nothing.
func (m *Manager) AvailableUpdates(ctx context.Context) ([]UpdateAvailable, error) {
	// Snapshot first so a concurrently mutated list is never observed
	// mid-iteration.
	catalogs := m.catalogs.Snapshot()

	var updates []UpdateAvailable
	for _, cat := range catalogs {
		man, err := m.fetcher.Fetch(ctx, cat.RawURI)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			m.logger.Warn().Err(err).Str("catalog", cat.Name).Msg("fetching catalog manifest failed")
			continue
		}

		for _, ext := range man.Extensions {
			installed := m.InstalledExtension(cat, ext).Get()
			if installed == nil {
				continue
			}
			installedVer, err := version.Parse(installed.Release)
			if err != nil {
				m.logger.Warn().Err(err).Str("extension", ext.Name).
					Str("release", installed.Release).Msg("installed release has unparseable version")
				continue
			}

			best := ext.MaxCompatibleRelease(m.host)
			if best == nil {
				continue
			}
			bestVer, err := best.Version()
			if err != nil {
				continue
			}
			if installedVer.LessThan(bestVer) {
				updates = append(updates, UpdateAvailable{
					Extension: ext.Name,
					Installed: installed.Release,
					Available: best.Name,
				})
			}
		}
	}
	return updates, nil
}
