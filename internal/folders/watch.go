package folders

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher wraps one fsnotify session. A new session replaces the old
// one whenever the root changes.
type watcher struct {
	fsw *fsnotify.Watcher
}

// resetWatchLocked tears down any running watch and starts a new one on
// the current root. A root that cannot be watched (missing, not a
// directory, permissions) disables manual-jar detection; it is retried
// on the next SetRoot. Caller holds m.mu.
func (m *Manager) resetWatchLocked() {
	m.stopWatchLocked()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		m.logger.Warn().Err(err).Msg("cannot create filesystem watcher, manual jar detection disabled")
		return
	}
	if err := fsw.Add(m.root); err != nil {
		m.logger.Debug().Err(err).Str("root", m.root).
			Msg("extension root not watchable, manual jar detection disabled")
		_ = fsw.Close()
		return
	}

	w := &watcher{fsw: fsw}
	m.watcher = w
	go m.watchLoop(w)
}

// stopWatchLocked closes the active session, if any. Caller holds m.mu.
func (m *Manager) stopWatchLocked() {
	if m.watcher != nil {
		_ = m.watcher.fsw.Close()
		m.watcher = nil
	}
}

// watchLoop consumes events from one session until its channel closes.
// Events arrive on a background goroutine, so mutations route through
// the manager lock, and a session that has been replaced drops out
// without touching shared state.
func (m *Manager) watchLoop(w *watcher) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isJar(ev.Name) {
				continue
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			m.mu.Lock()
			if m.watcher != w || filepath.Dir(ev.Name) != m.root {
				m.mu.Unlock()
				continue
			}
			m.rescanManualLocked()
			m.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			m.logger.Warn().Err(err).Msg("filesystem watcher error")
		}
	}
}
