package folders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/extpack-labs/extpack/internal/manifest"
)

// RegistryFile is the name of the persisted catalog registry at the
// extension root.
const RegistryFile = "registry.json"

// ErrRegistryUnreadable marks a missing or corrupt registry file, as
// opposed to a genuine I/O failure, so callers can fall back to a
// default registry.
var ErrRegistryUnreadable = errors.New("registry file missing or corrupt")

// RegistryPath returns the registry file location under the current root.
func (m *Manager) RegistryPath() string {
	return filepath.Join(m.Root(), RegistryFile)
}

// SaveRegistry persists catalogs, order-preserving, to registry.json.
func (m *Manager) SaveRegistry(catalogs []manifest.Catalog) error {
	data, err := json.MarshalIndent(catalogs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	if err := os.MkdirAll(m.Root(), 0o755); err != nil {
		return fmt.Errorf("creating extension root: %w", err)
	}
	if err := os.WriteFile(m.RegistryPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	return nil
}

// LoadRegistry reads registry.json. A missing or corrupt file returns
// an error wrapping ErrRegistryUnreadable.
func (m *Manager) LoadRegistry() ([]manifest.Catalog, error) {
	data, err := os.ReadFile(m.RegistryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrRegistryUnreadable, err)
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	var catalogs []manifest.Catalog
	if err := json.Unmarshal(data, &catalogs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnreadable, err)
	}
	return catalogs, nil
}
