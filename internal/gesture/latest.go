package gesture

import "sync"

// Latest is the single-slot handoff between the vision loop and the render
// loop. Writes overwrite, reads never block, and there is no queue: if
// several vision frames land between two render ticks only the newest
// gesture is visible.
type Latest struct {
	mu sync.RWMutex
	g  Gesture
}

// NewLatest creates a cell holding the explicit None gesture.
func NewLatest() *Latest {
	return &Latest{g: None}
}

// Store replaces the held gesture.
func (l *Latest) Store(g Gesture) {
	l.mu.Lock()
	l.g = g
	l.mu.Unlock()
}

// Load returns the most recently stored gesture. The value is held, not
// consumed: a render tick with no fresh vision frame sees the same gesture
// again until the vision loop overwrites it.
func (l *Latest) Load() Gesture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.g
}
