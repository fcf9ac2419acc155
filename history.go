package puzzled

import "slices"

// History is the stack of applied top-level tokens, oldest first.
type History struct {
	entries []string
	limit   int
}

// NewHistory creates a History holding at most limit entries.
// A limit of zero keeps every entry.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push appends an applied token. When the history is full the oldest
// entry is evicted.
func (h *History) Push(token string) {
	if h.limit > 0 && len(h.entries) >= h.limit {
		h.entries = slices.Delete(h.entries, 0, 1)
	}
	h.entries = append(h.entries, token)
}

// Pop removes and returns the most recent token.
// Returns false if the history is empty.
func (h *History) Pop() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Peek returns the most recent token without removing it.
func (h *History) Peek() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
