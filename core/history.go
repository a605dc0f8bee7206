package core

import "sync"

// History is the ordered conversation log shared between a session front-end
// and the orchestration loop. It is literally the prompt context: insertion
// order is significant and turns are never edited in place.
//
// Contract:
//   - Append is the only mutator besides Clear
//   - Snapshot returns a defensive copy; it never reflects later appends
//   - Clear truncates to empty
//
// History is safe for concurrent access, though the session layer additionally
// enforces single-writer discipline for the duration of a chat round.
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewHistory creates an empty conversation log.
func NewHistory() *History {
	return &History{}
}

// Append adds a turn to the end of the log.
func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, t.clone())
}

// Snapshot returns a copy of all turns in insertion order. The returned slice
// is owned by the caller; later appends are not visible through it.
func (h *History) Snapshot() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	turns := make([]Turn, len(h.turns))
	for i, t := range h.turns {
		turns[i] = t.clone()
	}
	return turns
}

// Clear truncates the log to empty.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

// Len returns the number of turns in the log.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
