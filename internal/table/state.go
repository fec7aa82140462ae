package table

// State is the per-table view state. Transitions return a new State and never
// modify the receiver.
type State struct {
	Filter Selection
	Sort   SortState
	Page   int
}

// NewState returns an unfiltered, unsorted state on page 1.
func NewState() State {
	return State{Filter: Selection{}, Page: 1}
}

// WithFilter applies sel and resets to page 1.
func (s State) WithFilter(sel Selection) State {
	s.Filter = sel.Clone()
	s.Page = 1
	return s
}

// WithSortToggled toggles col and resets to page 1.
func (s State) WithSortToggled(col string) State {
	s.Sort = s.Sort.Toggle(col)
	s.Page = 1
	return s
}

// WithSort replaces the sort state and resets to page 1.
func (s State) WithSort(sort SortState) State {
	s.Sort = sort
	s.Page = 1
	return s
}

// WithSortCleared removes any sort column and resets to page 1.
func (s State) WithSortCleared() State {
	return s.WithSort(SortState{})
}

// WithPageDelta moves delta pages, clamped into [1, totalPages].
func (s State) WithPageDelta(delta, totalPages int) State {
	s.Page = clampPage(s.Page+delta, totalPages)
	return s
}

// WithPage jumps to page n, clamped into [1, totalPages].
func (s State) WithPage(n, totalPages int) State {
	s.Page = clampPage(n, totalPages)
	return s
}

// WithPageRestored resets to page 1 when the current page no longer exists.
func (s State) WithPageRestored(totalPages int) State {
	if s.Page < 1 || s.Page > totalPages {
		s.Page = 1
	}
	return s
}
