package folders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/extpack-labs/extpack/internal/manifest"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	m := New(root, zerolog.Nop())
	t.Cleanup(func() { m.Close() })
	return m, root
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "My Catalog", "My Catalog"},
		{"slashes", "a/b\\c", "abc"},
		{"all illegal", `\/:"*?<>|`, ""},
		{"newlines", "line\none\r", "lineone"},
		{"mixed", `ext:v2?"beta"`, "extv2beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsAny(got, "\\/:\"*?<>|\n\r") {
				t.Errorf("Sanitize(%q) = %q still contains illegal characters", tt.input, got)
			}
		})
	}
}

func TestReleaseDirLayout(t *testing.T) {
	m, root := newTestManager(t)
	cat := manifest.Catalog{Name: "Main: Catalog"}
	ext := manifest.Extension{Name: "cool/ext"}

	dir, err := m.ReleaseDir(cat, ext, "v1.0.0", MainJar)
	if err != nil {
		t.Fatalf("ReleaseDir failed: %v", err)
	}

	want := filepath.Join(root, "Main Catalog", "coolext", "v1.0.0", "main-jar")
	if dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestKindFolders(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{MainJar, "main-jar"},
		{Docs, "javadocs-dependencies"},
		{RequiredDeps, "required-dependencies"},
		{OptionalDeps, "optional-dependencies"},
	}
	for _, tt := range tests {
		if got := tt.kind.Folder(); got != tt.want {
			t.Errorf("Folder() = %q, want %q", got, tt.want)
		}
	}
}

func TestInstalledState(t *testing.T) {
	m, _ := newTestManager(t)
	cat := manifest.Catalog{Name: "cat"}
	ext := manifest.Extension{Name: "ext"}

	// Not installed: no directory at all.
	if _, _, installed := m.InstalledState(cat, ext); installed {
		t.Fatal("expected not installed for missing directory")
	}

	// One release with a populated main-jar folder.
	dir, err := m.ReleaseDir(cat, ext, "v1.0.0", MainJar)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ext.jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}

	release, optional, installed := m.InstalledState(cat, ext)
	if !installed || release != "v1.0.0" || optional {
		t.Errorf("state = (%q, %v, %v), want (v1.0.0, false, true)", release, optional, installed)
	}

	// Optional deps present.
	optDir, err := m.ReleaseDir(cat, ext, "v1.0.0", OptionalDeps)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(optDir, "dep.jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, optional, _ := m.InstalledState(cat, ext); !optional {
		t.Error("expected optional dependencies to be reported installed")
	}

	// A second release subdirectory invalidates the state.
	if _, err := m.ReleaseDir(cat, ext, "v2.0.0", MainJar); err != nil {
		t.Fatal(err)
	}
	if _, _, installed := m.InstalledState(cat, ext); installed {
		t.Error("expected not installed with two release directories")
	}
}

func TestManualAndManagedJars(t *testing.T) {
	m, root := newTestManager(t)

	// A loose jar in the root is manual.
	if err := os.WriteFile(filepath.Join(root, "byhand.jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A jar under the layout is managed.
	dir, err := m.ReleaseDir(manifest.Catalog{Name: "cat"}, manifest.Extension{Name: "ext"}, "v1", MainJar)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "managed.jar"), []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}

	managed := m.ManagedJars()
	if len(managed) != 1 || filepath.Base(managed[0]) != "managed.jar" {
		t.Errorf("ManagedJars = %v, want one managed.jar", managed)
	}

	// The watcher should pick the manual jar up; poll briefly since the
	// event arrives on a background goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for {
		jars := m.ManualJars().Snapshot()
		if len(jars) == 1 && filepath.Base(jars[0]) == "byhand.jar" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("ManualJars = %v, want one byhand.jar", jars)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSetRootDisablesDetectionOnBadPath(t *testing.T) {
	m, _ := newTestManager(t)

	var gotRoot string
	unsub := m.OnRootChanged(func(r string) { gotRoot = r })
	defer unsub()

	bad := filepath.Join(t.TempDir(), "does-not-exist")
	m.SetRoot(bad)

	if gotRoot != bad {
		t.Errorf("root change observer got %q, want %q", gotRoot, bad)
	}
	if jars := m.ManualJars().Snapshot(); len(jars) != 0 {
		t.Errorf("ManualJars = %v, want empty for invalid root", jars)
	}
}

func TestDeleteTree(t *testing.T) {
	// Route the linux trash into the sandbox.
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, root := newTestManager(t)
	dir := filepath.Join(root, "victim")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "f.jar"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.DeleteTree(dir); err != nil {
		t.Fatalf("DeleteTree failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory still present after DeleteTree")
	}
}
