// Package observe provides the reactive list and cell primitives the
// lifecycle manager publishes its state through. Listeners are notified
// after a mutation is committed under the container's lock, on the
// mutating goroutine, with no UI-thread affinity.
package observe

import "sync"

// Unsubscribe detaches a previously registered listener. Safe to call
// more than once.
type Unsubscribe func()

// List is an observable, order-preserving slice of T.
type List[T any] struct {
	mu        sync.RWMutex
	items     []T
	listeners map[int]func([]T)
	nextID    int
}

// NewList returns an empty observable list.
func NewList[T any]() *List[T] {
	return &List[T]{listeners: make(map[int]func([]T))}
}

// Snapshot returns a copy of the current items.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the current item count.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Replace swaps the whole contents for items and notifies listeners.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	l.items = make([]T, len(items))
	copy(l.items, items)
	snapshot, fns := l.snapshotLocked()
	l.mu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}

// Append adds items to the end and notifies listeners.
func (l *List[T]) Append(items ...T) {
	l.mu.Lock()
	l.items = append(l.items, items...)
	snapshot, fns := l.snapshotLocked()
	l.mu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}

// RemoveFunc deletes every item matching pred, preserving order, and
// notifies listeners if anything was removed. Returns the removed count.
func (l *List[T]) RemoveFunc(pred func(T) bool) int {
	l.mu.Lock()
	kept := l.items[:0]
	removed := 0
	for _, it := range l.items {
		if pred(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	l.items = kept
	if removed == 0 {
		l.mu.Unlock()
		return 0
	}
	snapshot, fns := l.snapshotLocked()
	l.mu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
	return removed
}

// Subscribe registers fn to run after every mutation with a snapshot of
// the new contents. The returned Unsubscribe detaches it.
func (l *List[T]) Subscribe(fn func([]T)) Unsubscribe {
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

func (l *List[T]) snapshotLocked() ([]T, []func([]T)) {
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	fns := make([]func([]T), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	return snapshot, fns
}

// Cell is an observable single value of T.
type Cell[T any] struct {
	mu        sync.RWMutex
	value     T
	listeners map[int]func(T)
	nextID    int
}

// NewCell returns a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, listeners: make(map[int]func(T))}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies listeners.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	fns := make([]func(T), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn to run after every Set with the new value.
func (c *Cell[T]) Subscribe(fn func(T)) Unsubscribe {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}
