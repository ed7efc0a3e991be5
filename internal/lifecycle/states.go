package lifecycle

import (
	"github.com/extpack-labs/extpack/internal/manifest"
	"github.com/extpack-labs/extpack/internal/observe"
)

// InstalledExtension returns the reactive cell holding the installed
// state for (cat, ext): a nil value means not installed. The state is
// computed from the filesystem on first access and cached; concurrent
// first accessors converge on the same cell. The cache is recomputed
// whenever the extension root changes.
func (m *Manager) InstalledExtension(cat manifest.Catalog, ext manifest.Extension) *observe.Cell[*InstalledExtension] {
	key := stateKey{catalog: cat.Name, extension: ext.Name}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.states[key]; ok {
		return entry.cell
	}

	entry := &stateEntry{
		cat:  cat,
		ext:  ext,
		cell: observe.NewCell(m.inspect(cat, ext)),
	}
	m.states[key] = entry
	return entry.cell
}

// inspect reads the installed state for one pair off the filesystem.
func (m *Manager) inspect(cat manifest.Catalog, ext manifest.Extension) *InstalledExtension {
	release, optional, installed := m.folders.InstalledState(cat, ext)
	if !installed {
		return nil
	}
	return &InstalledExtension{Release: release, OptionalDependencies: optional}
}

// recomputeStates refreshes every cached cell from the filesystem.
// Used when the extension root path changes underneath the cache.
func (m *Manager) recomputeStates() {
	m.mu.Lock()
	entries := make([]*stateEntry, 0, len(m.states))
	for _, e := range m.states {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	for _, e := range entries {
		e.cell.Set(m.inspect(e.cat, e.ext))
	}
}

// setState publishes a new installed state for one pair, creating the
// cache entry when needed.
func (m *Manager) setState(cat manifest.Catalog, ext manifest.Extension, st *InstalledExtension) {
	key := stateKey{catalog: cat.Name, extension: ext.Name}

	m.mu.Lock()
	entry, ok := m.states[key]
	if !ok {
		entry = &stateEntry{cat: cat, ext: ext, cell: observe.NewCell[*InstalledExtension](nil)}
		m.states[key] = entry
	}
	m.mu.Unlock()

	entry.cell.Set(st)
}
