package lifecycle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	updateCacheFileName = "update-check.json"
	// DefaultUpdateCacheMaxAge is the default maximum age for a cached
	// update check.
	DefaultUpdateCacheMaxAge = 24 * time.Hour
)

// UpdateCache holds the result of the last update check so repeated
// invocations do not refetch every catalog manifest.
type UpdateCache struct {
	HostVersion string            `json:"host_version"`
	CheckedAt   time.Time         `json:"checked_at"`
	Updates     []UpdateAvailable `json:"updates"`
}

// LoadUpdateCache reads the update cache from the config directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadUpdateCache(configDir string) (*UpdateCache, error) {
	path := filepath.Join(configDir, updateCacheFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading update cache: %w", err)
	}

	var cache UpdateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing update cache: %w", err)
	}
	return &cache, nil
}

// SaveUpdateCache writes the update cache to the config directory.
func SaveUpdateCache(configDir string, cache *UpdateCache) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling update cache: %w", err)
	}

	path := filepath.Join(configDir, updateCacheFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing update cache: %w", err)
	}
	return nil
}

// IsUpdateCacheStale reports whether the cache is nil, older than
// maxAge, or was computed for a different host version.
func IsUpdateCacheStale(cache *UpdateCache, hostVersion string, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	if cache.HostVersion != hostVersion {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}
