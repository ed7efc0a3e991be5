package lifecycle

import (
	"strings"

	"github.com/extpack-labs/extpack/internal/faults"
	"github.com/extpack-labs/extpack/internal/manifest"
)

// AddCatalogs appends the given catalogs to the saved set and persists
// the registry. Entries whose name collides with an already-saved
// catalog (or with an earlier entry in the same call) are rejected and
// logged, not added. A persistence failure leaves the in-memory list
// untouched and is returned to the caller.
func (m *Manager) AddCatalogs(catalogs []manifest.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.catalogs.Snapshot()
	names := make(map[string]bool, len(current))
	for _, c := range current {
		names[c.Name] = true
	}

	next := current
	added := 0
	for _, c := range catalogs {
		if names[c.Name] {
			m.logger.Warn().Str("catalog", c.Name).Msg("catalog name already in use, rejected")
			continue
		}
		names[c.Name] = true
		next = append(next, c)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := m.folders.SaveRegistry(next); err != nil {
		return faults.IO(err, "persisting registry after adding catalogs")
	}
	m.catalogs.Replace(next)
	m.logger.Info().Int("added", added).Msg("catalogs added")
	return nil
}

// RemoveCatalogs removes the given catalogs from the saved set and
// persists the registry. Non-deletable catalogs are skipped and logged.
// A persistence failure leaves the in-memory list untouched and is
// returned. When removeInstalled is set, each removed catalog's
// directory is deleted best-effort after the registry has been
// committed, and cached installed state under it is cleared.
func (m *Manager) RemoveCatalogs(catalogs []manifest.Catalog, removeInstalled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.catalogs.Snapshot()
	saved := make(map[string]manifest.Catalog, len(current))
	for _, c := range current {
		saved[c.Name] = c
	}

	removing := make(map[string]manifest.Catalog)
	for _, c := range catalogs {
		existing, ok := saved[c.Name]
		if !ok {
			continue
		}
		if !existing.Deletable {
			m.logger.Warn().Str("catalog", existing.Name).Msg("catalog is not deletable, skipped")
			continue
		}
		removing[existing.Name] = existing
	}
	if len(removing) == 0 {
		return nil
	}

	next := current[:0:0]
	for _, c := range current {
		if _, gone := removing[c.Name]; !gone {
			next = append(next, c)
		}
	}

	if err := m.folders.SaveRegistry(next); err != nil {
		return faults.IO(err, "persisting registry after removing catalogs")
	}
	m.catalogs.Replace(next)

	// The registry is committed; everything below is best-effort.
	for _, c := range removing {
		m.clearStatesForCatalogLocked(c.Name)
		if removeInstalled {
			dir := m.folders.CatalogDir(c)
			if err := m.folders.DeleteTree(dir); err != nil {
				m.logger.Error().Err(err).Str("catalog", c.Name).Str("dir", dir).
					Msg("removing catalog directory failed")
			}
		}
	}
	if removeInstalled {
		m.managedJars.Replace(m.folders.ManagedJars())
	}

	names := make([]string, 0, len(removing))
	for name := range removing {
		names = append(names, name)
	}
	m.logger.Info().Str("catalogs", strings.Join(names, ", ")).Msg("catalogs removed")
	return nil
}

// clearStatesForCatalogLocked drops cached installed state for every
// extension under the named catalog. Caller holds m.mu.
func (m *Manager) clearStatesForCatalogLocked(catalogName string) {
	for key, entry := range m.states {
		if key.catalog == catalogName {
			entry.cell.Set(nil)
			delete(m.states, key)
		}
	}
}
