// Package tui provides a Bubble Tea terminal UI for the bar.
package tui

// History keeps the most recent commands in a fixed-size ring and walks
// them with a cursor for Up/Down recall.
type History struct {
	ring   []string
	start  int // index of the oldest entry
	size   int
	cursor int // steps back from the newest entry; -1 when not navigating
}

// NewHistory creates a history holding at most max commands.
func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{ring: make([]string, max), cursor: -1}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return h.size }

// at returns the i-th entry, oldest first.
func (h *History) at(i int) string {
	return h.ring[(h.start+i)%len(h.ring)]
}

// Push records a command. Repeating the newest entry is a no-op.
func (h *History) Push(cmd string) {
	if h.size > 0 && h.at(h.size-1) == cmd {
		return
	}
	if h.size < len(h.ring) {
		h.ring[(h.start+h.size)%len(h.ring)] = cmd
		h.size++
		return
	}
	h.ring[h.start] = cmd
	h.start = (h.start + 1) % len(h.ring)
}

// Prev steps to an older entry and stays on the oldest once reached.
func (h *History) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	if h.cursor < h.size-1 {
		h.cursor++
	}
	return h.at(h.size - 1 - h.cursor), true
}

// Next steps to a newer entry. Stepping past the newest returns false and
// leaves navigation.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	h.cursor--
	if h.cursor < 0 {
		return "", false
	}
	return h.at(h.size - 1 - h.cursor), true
}

// ResetCursor leaves navigation; the next Prev starts from the newest entry.
func (h *History) ResetCursor() {
	h.cursor = -1
}

// Recent returns up to n entries, oldest first.
func (h *History) Recent(n int) []string {
	if n > h.size {
		n = h.size
	}
	out := make([]string, 0, n)
	for i := h.size - n; i < h.size; i++ {
		out = append(out, h.at(i))
	}
	return out
}
