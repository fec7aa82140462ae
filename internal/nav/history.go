package nav

// History is a back stack of routes. The zero value is empty.
type History struct {
	entries []Route
}

// NewHistory starts a history at root.
func NewHistory(root Route) *History {
	return &History{entries: []Route{root}}
}

// Push appends a new entry.
func (h *History) Push(r Route) {
	h.entries = append(h.entries, r)
}

// Replace overwrites the current entry without adding one. On an empty
// history it behaves like Push.
func (h *History) Replace(r Route) {
	if len(h.entries) == 0 {
		h.entries = append(h.entries, r)
		return
	}
	h.entries[len(h.entries)-1] = r
}

// Back drops the current entry and returns the previous one. It reports false
// and leaves the history untouched when already at the root.
func (h *History) Back() (Route, bool) {
	if len(h.entries) < 2 {
		return h.Current(), false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), true
}

// Current returns the current entry, or the zero Route.
func (h *History) Current() Route {
	if len(h.entries) == 0 {
		return Route{}
	}
	return h.entries[len(h.entries)-1]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
