package table

import "slices"

// Config describes one table instance.
type Config[T any] struct {
	Dimensions []Dimension[T]
	Columns    []Column[T]
	PageSize   int
	// DefaultOrder orders rows when no sort column is selected. Nil keeps
	// source order.
	DefaultOrder func(a, b T) int
	// Comparer collates text values. Nil uses English.
	Comparer *Comparer
}

// Pipeline composes Filter, Sort and Paginate over a read-only source and
// memoizes the filtered, sorted rows until the source, filter or sort change.
type Pipeline[T any] struct {
	cfg    Config[T]
	source []T
	state  State

	ordered    []T
	valid      bool
	recomputes int
}

// New returns a pipeline over source on page 1.
func New[T any](source []T, cfg Config[T]) *Pipeline[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = 1
	}
	if cfg.Comparer == nil {
		cfg.Comparer = NewComparer("")
	}
	return &Pipeline[T]{cfg: cfg, source: source, state: NewState()}
}

// State returns the current view state.
func (p *Pipeline[T]) State() State {
	return p.state
}

// PageSize returns the fixed page size.
func (p *Pipeline[T]) PageSize() int {
	return p.cfg.PageSize
}

// Columns returns the configured columns.
func (p *Pipeline[T]) Columns() []Column[T] {
	return p.cfg.Columns
}

// Groups derives the filter groups from the current source.
func (p *Pipeline[T]) Groups() []FilterGroup {
	return Groups(p.source, p.cfg.Dimensions)
}

// SetSource replaces the rows. If the current page no longer exists the page
// resets to 1.
func (p *Pipeline[T]) SetSource(rows []T) {
	p.source = rows
	p.valid = false
	p.ensure()
}

// SetFilter applies sel and resets to page 1.
func (p *Pipeline[T]) SetFilter(sel Selection) {
	if sel.Equal(p.state.Filter) {
		return
	}
	p.state = p.state.WithFilter(sel)
	p.valid = false
}

// ToggleSort toggles col and resets to page 1. It reports false and leaves
// the state unchanged when col is not a sortable column.
func (p *Pipeline[T]) ToggleSort(col string) bool {
	c, ok := FindColumn(p.cfg.Columns, col)
	if !ok || !c.Sortable {
		return false
	}
	p.state = p.state.WithSortToggled(col)
	p.valid = false
	return true
}

// SetSort replaces the sort state and resets to page 1.
func (p *Pipeline[T]) SetSort(sort SortState) {
	p.state = p.state.WithSort(sort)
	p.valid = false
}

// ClearSort removes the sort column and resets to page 1.
func (p *Pipeline[T]) ClearSort() {
	p.SetSort(SortState{})
}

// NextPage moves forward one page, clamped.
func (p *Pipeline[T]) NextPage() {
	p.MovePage(1)
}

// PrevPage moves back one page, clamped.
func (p *Pipeline[T]) PrevPage() {
	p.MovePage(-1)
}

// MovePage moves delta pages, clamped. The cached rows are reused.
func (p *Pipeline[T]) MovePage(delta int) {
	p.ensure()
	p.state = p.state.WithPageDelta(delta, p.totalPages())
}

// GoToPage jumps to page n, clamped. The cached rows are reused.
func (p *Pipeline[T]) GoToPage(n int) {
	p.ensure()
	p.state = p.state.WithPage(n, p.totalPages())
}

// Rows returns every filtered and sorted row.
func (p *Pipeline[T]) Rows() []T {
	p.ensure()
	return p.ordered
}

// View returns the current page.
func (p *Pipeline[T]) View() Page[T] {
	p.ensure()
	return Paginate(p.ordered, p.state.Page, p.cfg.PageSize)
}

// Recomputes counts filter+sort passes. Page navigation never increments it.
func (p *Pipeline[T]) Recomputes() int {
	return p.recomputes
}

func (p *Pipeline[T]) totalPages() int {
	return TotalPages(len(p.ordered), p.cfg.PageSize)
}

func (p *Pipeline[T]) ensure() {
	if p.valid {
		return
	}
	rows := Filter(p.source, p.cfg.Dimensions, p.state.Filter)
	if p.state.Sort.Active() {
		rows = Sort(rows, p.cfg.Columns, p.state.Sort, p.cfg.Comparer)
	} else if p.cfg.DefaultOrder != nil {
		slices.SortStableFunc(rows, p.cfg.DefaultOrder)
	}
	p.ordered = rows
	p.valid = true
	p.recomputes++
	p.state = p.state.WithPageRestored(p.totalPages())
}
