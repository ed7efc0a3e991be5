package loader

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestAddJarNotifiesListeners(t *testing.T) {
	l := New(zerolog.Nop())
	defer l.Close()

	var got []string
	l.OnJarLoaded(func(path string) { got = append(got, path) })

	l.AddJar("/root/a.jar")
	l.AddJar("/root/b.jar")

	if len(got) != 2 || got[0] != "/root/a.jar" || got[1] != "/root/b.jar" {
		t.Errorf("listener saw %v, want [/root/a.jar /root/b.jar]", got)
	}
	if loaded := l.Loaded(); len(loaded) != 2 {
		t.Errorf("Loaded() = %v, want 2 entries", loaded)
	}
}

func TestAddJarIdempotentPerPath(t *testing.T) {
	l := New(zerolog.Nop())
	defer l.Close()

	calls := 0
	l.OnJarLoaded(func(string) { calls++ })

	l.AddJar("/root/a.jar")
	l.AddJar("/root/a.jar")

	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
	if loaded := l.Loaded(); len(loaded) != 1 {
		t.Errorf("Loaded() = %v, want 1 entry", loaded)
	}
}

func TestListenerPanicContained(t *testing.T) {
	l := New(zerolog.Nop())
	defer l.Close()

	l.OnJarLoaded(func(string) { panic("boom") })
	tail := 0
	l.OnJarLoaded(func(string) { tail++ })

	// Must not propagate.
	l.AddJar("/root/a.jar")

	if len(l.Loaded()) != 1 {
		t.Error("jar not recorded after listener panic")
	}
	if tail != 1 {
		t.Error("second listener not invoked after first panicked")
	}
}

func TestRemoveJarOnlyUntracks(t *testing.T) {
	l := New(zerolog.Nop())
	defer l.Close()

	l.AddJar("/root/a.jar")
	l.RemoveJar("/root/a.jar")

	// Loaded code cannot be unloaded.
	if loaded := l.Loaded(); len(loaded) != 1 {
		t.Errorf("Loaded() = %v, want the jar to stay loaded", loaded)
	}

	// The filename is free again, so reloading from elsewhere is not a
	// collision and still notifies.
	calls := 0
	l.OnJarLoaded(func(string) { calls++ })
	l.AddJar("/elsewhere/a.jar")
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	l := New(zerolog.Nop())
	defer l.Close()

	calls := 0
	unsub := l.OnJarLoaded(func(string) { calls++ })
	unsub()
	l.AddJar("/root/a.jar")

	if calls != 0 {
		t.Errorf("listener calls = %d after unsubscribe, want 0", calls)
	}
}

func TestCloseIdempotent(t *testing.T) {
	l := New(zerolog.Nop())
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	l.AddJar("/root/a.jar")
	if len(l.Loaded()) != 0 {
		t.Error("AddJar after Close should be a no-op")
	}
}
