// Package loader incorporates installed module archives into the
// running process. Loading is append-only: code made loadable stays
// loadable for the life of the process, and removal only updates the
// tracking used for reinstall-collision warnings.
package loader

import (
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/extpack-labs/extpack/internal/observe"
)

// Listener is notified after a jar has been made loadable.
type Listener func(path string)

// Loader maintains the append-only set of loaded jar archives.
type Loader struct {
	mu        sync.Mutex
	logger    zerolog.Logger
	loaded    []string            // load order, append-only
	loadedSet map[string]struct{} // paths already loaded
	tracked   map[string]string   // filename -> path, trimmed by RemoveJar
	listeners map[int]Listener
	nextID    int
	closed    bool
}

// New creates an empty Loader.
func New(logger zerolog.Logger) *Loader {
	return &Loader{
		logger:    logger.With().Str("component", "loader").Logger(),
		loadedSet: make(map[string]struct{}),
		tracked:   make(map[string]string),
		listeners: make(map[int]Listener),
	}
}

// AddJar makes the archive at path loadable and notifies listeners.
// Loading the same path twice is a no-op. A different path carrying an
// already-tracked filename is loaded anyway but logged as a collision;
// which definition wins is up to the host's loading rules.
func (l *Loader) AddJar(path string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, ok := l.loadedSet[path]; ok {
		l.mu.Unlock()
		return
	}

	name := filepath.Base(path)
	if prev, ok := l.tracked[name]; ok && prev != path {
		l.logger.Warn().Str("jar", name).Str("previous", prev).Str("new", path).
			Msg("jar filename collision among loaded archives")
	}
	l.loaded = append(l.loaded, path)
	l.loadedSet[path] = struct{}{}
	l.tracked[name] = path

	fns := make([]Listener, 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		l.notify(fn, path)
	}
}

// notify runs one listener, containing panics so a misbehaving listener
// cannot break loading.
func (l *Loader) notify(fn Listener, path string) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Interface("panic", r).Str("jar", path).
				Msg("jar-loaded listener panicked")
		}
	}()
	fn(path)
}

// RemoveJar stops tracking the archive's filename. The code itself
// stays loaded; true unloading is not supported.
func (l *Loader) RemoveJar(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := filepath.Base(path)
	if tracked, ok := l.tracked[name]; ok && tracked == path {
		delete(l.tracked, name)
	}
}

// Loaded returns the archives made loadable so far, in load order.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// OnJarLoaded registers fn to run after every successful AddJar.
func (l *Loader) OnJarLoaded(fn Listener) observe.Unsubscribe {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// Close stops accepting new jars and drops listeners. Idempotent.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.listeners = make(map[int]Listener)
	return nil
}
