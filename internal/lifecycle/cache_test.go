package lifecycle

import (
	"testing"
	"time"
)

func TestUpdateCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache := &UpdateCache{
		HostVersion: "v2.0.0",
		CheckedAt:   time.Now().Truncate(time.Second),
		Updates: []UpdateAvailable{
			{Extension: "charting", Installed: "v0.1.0", Available: "v1.0.0"},
		},
	}
	if err := SaveUpdateCache(dir, cache); err != nil {
		t.Fatalf("SaveUpdateCache failed: %v", err)
	}

	loaded, err := LoadUpdateCache(dir)
	if err != nil {
		t.Fatalf("LoadUpdateCache failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadUpdateCache returned nil for existing cache")
	}
	if loaded.HostVersion != "v2.0.0" || len(loaded.Updates) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Updates[0] != cache.Updates[0] {
		t.Errorf("updates round-trip mismatch: %+v", loaded.Updates[0])
	}
}

func TestLoadUpdateCacheMissing(t *testing.T) {
	cache, err := LoadUpdateCache(t.TempDir())
	if err != nil {
		t.Fatalf("LoadUpdateCache failed: %v", err)
	}
	if cache != nil {
		t.Errorf("cache = %+v, want nil on first run", cache)
	}
}

func TestIsUpdateCacheStale(t *testing.T) {
	fresh := &UpdateCache{HostVersion: "v2.0.0", CheckedAt: time.Now()}
	old := &UpdateCache{HostVersion: "v2.0.0", CheckedAt: time.Now().Add(-48 * time.Hour)}

	tests := []struct {
		name  string
		cache *UpdateCache
		host  string
		want  bool
	}{
		{"nil cache", nil, "v2.0.0", true},
		{"fresh same host", fresh, "v2.0.0", false},
		{"fresh different host", fresh, "v3.0.0", true},
		{"expired", old, "v2.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUpdateCacheStale(tt.cache, tt.host, DefaultUpdateCacheMaxAge)
			if got != tt.want {
				t.Errorf("IsUpdateCacheStale() = %v, want %v", got, tt.want)
			}
		})
	}
}
