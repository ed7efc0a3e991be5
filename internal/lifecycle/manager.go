// Package lifecycle orchestrates the extension lifecycle: the
// authoritative catalog list, the per-(catalog, extension) installed
// state, the install/update/remove protocol, and update discovery.
// Every public operation is safe for concurrent callers.
package lifecycle

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/extpack-labs/extpack/internal/download"
	"github.com/extpack-labs/extpack/internal/folders"
	"github.com/extpack-labs/extpack/internal/loader"
	"github.com/extpack-labs/extpack/internal/manifest"
	"github.com/extpack-labs/extpack/internal/observe"
	"github.com/extpack-labs/extpack/internal/version"
)

// InstalledExtension records what a successful install left behind for
// one (catalog, extension) pair: the release name and whether optional
// dependencies were installed. Absence (a nil cell value) means not
// installed.
type InstalledExtension struct {
	Release              string
	OptionalDependencies bool
}

// stateKey identifies one (catalog, extension) pair in the state cache.
type stateKey struct {
	catalog   string
	extension string
}

// stateEntry pairs a cached reactive cell with the identities needed to
// recompute it from the filesystem.
type stateEntry struct {
	cat  manifest.Catalog
	ext  manifest.Extension
	cell *observe.Cell[*InstalledExtension]
}

// Manager is the extension lifecycle manager.
type Manager struct {
	mu     sync.Mutex // guards catalog mutation and the state map
	logger zerolog.Logger
	host   version.Version

	folders *folders.Manager
	loader  *loader.Loader
	fetcher *manifest.Fetcher
	dl      *download.Client

	catalogs    *observe.List[manifest.Catalog]
	managedJars *observe.List[string]
	states      map[stateKey]*stateEntry

	unsubRoot   observe.Unsubscribe
	unsubManual observe.Unsubscribe
	closeOnce   sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithFetcher replaces the manifest fetcher (useful for testing).
func WithFetcher(f *manifest.Fetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithDownloader replaces the download client (useful for testing).
func WithDownloader(d *download.Client) Option {
	return func(m *Manager) { m.dl = d }
}

// New builds a Manager over the given collaborators. The saved catalog
// registry is loaded from the folder manager's root; a missing or
// corrupt registry falls back to defaultCatalogs. Jars dropped into the
// root by hand are picked up by the watcher and made loadable.
func New(host version.Version, fm *folders.Manager, ld *loader.Loader,
	defaultCatalogs []manifest.Catalog, logger zerolog.Logger, opts ...Option) (*Manager, error) {

	m := &Manager{
		logger:      logger.With().Str("component", "lifecycle").Logger(),
		host:        host,
		folders:     fm,
		loader:      ld,
		fetcher:     manifest.NewFetcher(),
		dl:          download.New(),
		catalogs:    observe.NewList[manifest.Catalog](),
		managedJars: observe.NewList[string](),
		states:      make(map[stateKey]*stateEntry),
	}
	for _, opt := range opts {
		opt(m)
	}

	cats, err := fm.LoadRegistry()
	if err != nil {
		if !errors.Is(err, folders.ErrRegistryUnreadable) {
			return nil, err
		}
		m.logger.Info().Err(err).Msg("registry unreadable, starting from defaults")
		cats = defaultCatalogs
	}
	m.catalogs.Replace(cats)
	m.managedJars.Replace(fm.ManagedJars())

	// Root changes invalidate every cached installed state and both
	// jar collections.
	m.unsubRoot = fm.OnRootChanged(func(string) {
		m.recomputeStates()
		m.managedJars.Replace(m.folders.ManagedJars())
	})

	// Manually dropped jars become loadable as soon as they appear.
	m.unsubManual = fm.ManualJars().Subscribe(func(jars []string) {
		for _, jar := range jars {
			m.loader.AddJar(jar)
		}
	})

	return m, nil
}

// Catalogs is the observable list of saved catalogs.
func (m *Manager) Catalogs() *observe.List[manifest.Catalog] {
	return m.catalogs
}

// ManualJars is the observable list of manually installed jar paths.
func (m *Manager) ManualJars() *observe.List[string] {
	return m.folders.ManualJars()
}

// ManagedJars is the observable list of catalog-managed jar paths.
func (m *Manager) ManagedJars() *observe.List[string] {
	return m.managedJars
}

// HostVersion returns the host-application version compatibility is
// evaluated against.
func (m *Manager) HostVersion() version.Version {
	return m.host
}

// LoadInstalledJars makes every jar already on disk, managed and
// manual, loadable. Hosts call this once at startup.
func (m *Manager) LoadInstalledJars() {
	for _, jar := range m.folders.ManagedJars() {
		m.loader.AddJar(jar)
	}
	for _, jar := range m.folders.ManualJars().Snapshot() {
		m.loader.AddJar(jar)
	}
}

// Close releases the filesystem watcher and the loader. Idempotent and
// safe from any goroutine.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		if m.unsubRoot != nil {
			m.unsubRoot()
		}
		if m.unsubManual != nil {
			m.unsubManual()
		}
		err = m.folders.Close()
		if cerr := m.loader.Close(); err == nil {
			err = cerr
		}
	})
	return err
}

// findCatalog returns the saved catalog with the given name.
func (m *Manager) findCatalog(name string) (manifest.Catalog, bool) {
	for _, c := range m.catalogs.Snapshot() {
		if c.Name == name {
			return c, true
		}
	}
	return manifest.Catalog{}, false
}
