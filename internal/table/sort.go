package table

import "slices"

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState selects one column and a direction. An empty Column means no
// reordering.
type SortState struct {
	Column    string
	Direction Direction
}

// Active reports whether a column is selected.
func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle flips the direction when col is already selected and otherwise
// selects col ascending.
func (s SortState) Toggle(col string) SortState {
	if s.Column == col {
		if s.Direction == Ascending {
			return SortState{Column: col, Direction: Descending}
		}
		return SortState{Column: col, Direction: Ascending}
	}
	return SortState{Column: col, Direction: Ascending}
}

// Align is the horizontal alignment of a rendered column.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column describes one table column over rows of type T.
type Column[T any] struct {
	Key      string
	Header   string
	Sortable bool
	Align    Align
	// Value extracts the comparable value. Required for sortable columns.
	Value func(T) Value
	// Render overrides the cell text; defaults to Value's display form.
	Render func(T) string
}

// Cell returns the display text for row.
func (c Column[T]) Cell(row T) string {
	if c.Render != nil {
		return c.Render(row)
	}
	if c.Value != nil {
		return c.Value(row).String()
	}
	return ""
}

// FindColumn returns the column with the given key.
func FindColumn[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Sort returns a stably sorted copy of rows. When state has no column, or the
// column is unknown or not sortable, the copy keeps input order.
// A nil cmp uses English collation.
func Sort[T any](rows []T, cols []Column[T], state SortState, cmp *Comparer) []T {
	out := slices.Clone(rows)
	if !state.Active() {
		return out
	}
	col, ok := FindColumn(cols, state.Column)
	if !ok || !col.Sortable || col.Value == nil {
		return out
	}
	if cmp == nil {
		cmp = NewComparer("")
	}

	sign := 1
	if state.Direction == Descending {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return sign * cmp.Compare(col.Value(a), col.Value(b))
	})
	return out
}
