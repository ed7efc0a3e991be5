// Package folders maps catalogs, extensions, and releases to canonical
// directories under the extension root, persists the catalog registry,
// and watches the root for manually installed jar archives.
package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/extpack-labs/extpack/internal/manifest"
	"github.com/extpack-labs/extpack/internal/observe"
	"github.com/extpack-labs/extpack/internal/platform"
)

// Kind selects one of the per-release download folders.
type Kind int

const (
	// MainJar holds the release's main archive.
	MainJar Kind = iota
	// Docs holds documentation archives.
	Docs
	// RequiredDeps holds required dependency archives.
	RequiredDeps
	// OptionalDeps holds optional dependency archives.
	OptionalDeps
)

// Folder returns the on-disk folder name for the kind. The names match
// the layout the host application has always used.
func (k Kind) Folder() string {
	switch k {
	case MainJar:
		return "main-jar"
	case Docs:
		return "javadocs-dependencies"
	case RequiredDeps:
		return "required-dependencies"
	case OptionalDeps:
		return "optional-dependencies"
	default:
		return "unknown"
	}
}

// jarExt is the archive extension recognized in the root directory.
const jarExt = ".jar"

// Manager owns the extension root directory: path layout, registry
// persistence, managed/manual jar detection, and the root watcher.
type Manager struct {
	mu     sync.Mutex
	root   string
	logger zerolog.Logger

	manualJars  *observe.List[string]
	rootChanged *observe.Cell[string]

	watcher *watcher
	closed  bool
}

// New creates a Manager rooted at root and starts watching it. An
// invalid or missing root disables manual-jar detection rather than
// failing; detection resumes when SetRoot points at a usable directory.
func New(root string, logger zerolog.Logger) *Manager {
	m := &Manager{
		root:        root,
		logger:      logger.With().Str("component", "folders").Logger(),
		manualJars:  observe.NewList[string](),
		rootChanged: observe.NewCell(root),
	}
	m.mu.Lock()
	m.resetWatchLocked()
	m.rescanManualLocked()
	m.mu.Unlock()
	return m
}

// Root returns the current extension root directory.
func (m *Manager) Root() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// SetRoot points the manager at a new root directory, re-establishes
// the watch, rescans manual jars, and notifies root-change observers.
func (m *Manager) SetRoot(root string) {
	m.mu.Lock()
	if m.root == root {
		m.mu.Unlock()
		return
	}
	m.root = root
	m.resetWatchLocked()
	m.rescanManualLocked()
	m.mu.Unlock()
	m.rootChanged.Set(root)
}

// OnRootChanged registers fn to run after every root change.
func (m *Manager) OnRootChanged(fn func(string)) observe.Unsubscribe {
	return m.rootChanged.Subscribe(fn)
}

// ManualJars is the observable list of jar archives sitting directly in
// the root, outside the catalog-managed layout.
func (m *Manager) ManualJars() *observe.List[string] {
	return m.manualJars
}

// Close stops the root watcher. Idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.stopWatchLocked()
	return nil
}

// Sanitize strips characters that are illegal in filenames on the
// supported platforms, plus newlines, from name.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '"', '*', '?', '<', '>', '|', '\n', '\r':
			return -1
		}
		return r
	}, name)
}

// CatalogDir returns the directory holding every extension of cat.
func (m *Manager) CatalogDir(cat manifest.Catalog) string {
	return filepath.Join(m.Root(), Sanitize(cat.Name))
}

// ExtensionDir returns the directory holding every release of ext
// within cat.
func (m *Manager) ExtensionDir(cat manifest.Catalog, ext manifest.Extension) string {
	return filepath.Join(m.Root(), Sanitize(cat.Name), Sanitize(ext.Name))
}

// ReleaseDir materializes and returns the folder for one file kind of a
// release: <root>/<catalog>/<extension>/<release>/<kind>.
func (m *Manager) ReleaseDir(cat manifest.Catalog, ext manifest.Extension, release string, kind Kind) (string, error) {
	dir := filepath.Join(m.ExtensionDir(cat, ext), Sanitize(release), kind.Folder())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// InstalledState inspects the filesystem to decide whether ext is
// installed from cat. Installed means the extension directory holds
// exactly one release subdirectory whose main-jar folder is non-empty.
// The optional flag reports a non-empty optional-dependencies folder.
func (m *Manager) InstalledState(cat manifest.Catalog, ext manifest.Extension) (release string, optional bool, installed bool) {
	dir := m.ExtensionDir(cat, ext)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, false
	}

	var releases []string
	for _, e := range entries {
		if e.IsDir() {
			releases = append(releases, e.Name())
		}
	}
	if len(releases) != 1 {
		return "", false, false
	}

	relDir := filepath.Join(dir, releases[0])
	if !dirNonEmpty(filepath.Join(relDir, MainJar.Folder())) {
		return "", false, false
	}
	return releases[0], dirNonEmpty(filepath.Join(relDir, OptionalDeps.Folder())), true
}

// ManagedJars lists every jar archive placed under the catalog-managed
// layout, i.e. inside any subdirectory of the root.
func (m *Manager) ManagedJars() []string {
	root := m.Root()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var jars []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		_ = filepath.WalkDir(filepath.Join(root, e.Name()), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && isJar(path) {
				jars = append(jars, path)
			}
			return nil
		})
	}
	return jars
}

// DeleteTree removes the directory tree at path, preferring the
// platform trash and falling back to permanent removal.
func (m *Manager) DeleteTree(path string) error {
	if err := platform.MoveToTrash(path); err == nil {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// rescanManualLocked rebuilds the manual-jar list from the root
// directory contents. Caller holds m.mu.
func (m *Manager) rescanManualLocked() {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		m.manualJars.Replace(nil)
		return
	}
	var jars []string
	for _, e := range entries {
		if !e.IsDir() && isJar(e.Name()) {
			jars = append(jars, filepath.Join(m.root, e.Name()))
		}
	}
	m.manualJars.Replace(jars)
}

func isJar(path string) bool {
	return strings.EqualFold(filepath.Ext(path), jarExt)
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
