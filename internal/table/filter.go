package table

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FilterGroup is one filterable dimension and its selectable options.
type FilterGroup struct {
	ID      string
	Title   string
	Options []string
}

// Dimension binds a filter group id to a typed row accessor.
// Value returns false when the row has no value for the dimension.
type Dimension[T any] struct {
	ID    string
	Title string
	Value func(T) (string, bool)
}

// OptionsFrom returns the sorted distinct non-empty values of a dimension.
func OptionsFrom[T any](rows []T, value func(T) (string, bool)) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		v, ok := value(row)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Groups derives one FilterGroup per dimension from rows.
func Groups[T any](rows []T, dims []Dimension[T]) []FilterGroup {
	groups := make([]FilterGroup, 0, len(dims))
	for _, d := range dims {
		groups = append(groups, FilterGroup{ID: d.ID, Title: d.Title, Options: OptionsFrom(rows, d.Value)})
	}
	return groups
}

// Selection maps a group id to its selected options.
// A missing or empty set means no constraint for that group.
// Methods never modify the receiver; mutators return a copy.
type Selection map[string]map[string]struct{}

// Has reports whether option is selected in group.
func (s Selection) Has(group, option string) bool {
	_, ok := s[group][option]
	return ok
}

// Values returns the selected options of group in sorted order.
func (s Selection) Values(group string) []string {
	return slices.Sorted(maps.Keys(s[group]))
}

// Count returns the number of selected options across all groups.
func (s Selection) Count() int {
	n := 0
	for _, set := range s {
		n += len(set)
	}
	return n
}

// Active reports whether any group constrains rows.
func (s Selection) Active() bool {
	return s.Count() > 0
}

// Clone returns a deep copy without empty groups.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for group, set := range s {
		if len(set) == 0 {
			continue
		}
		out[group] = maps.Clone(set)
	}
	return out
}

// Toggle returns a copy with option added to or removed from group.
func (s Selection) Toggle(group, option string) Selection {
	out := s.Clone()
	set := out[group]
	if _, ok := set[option]; ok {
		delete(set, option)
		if len(set) == 0 {
			delete(out, group)
		}
		return out
	}
	if set == nil {
		set = make(map[string]struct{})
		out[group] = set
	}
	set[option] = struct{}{}
	return out
}

// With returns a copy where group selects exactly options.
func (s Selection) With(group string, options ...string) Selection {
	out := s.Clone()
	delete(out, group)
	if len(options) == 0 {
		return out
	}
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	out[group] = set
	return out
}

// Equal reports whether both selections constrain the same options.
func (s Selection) Equal(other Selection) bool {
	a, b := s.Clone(), other.Clone()
	if len(a) != len(b) {
		return false
	}
	for group, set := range a {
		if !maps.Equal(set, b[group]) {
			return false
		}
	}
	return true
}

// ParseSelection builds a Selection from "group=value" pairs.
func ParseSelection(pairs []string) (Selection, error) {
	sel := Selection{}
	for _, pair := range pairs {
		group, value, ok := strings.Cut(pair, "=")
		group = strings.TrimSpace(group)
		if !ok || group == "" || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("invalid filter %q (want group=value)", pair)
		}
		if !sel.Has(group, value) {
			sel = sel.Toggle(group, value)
		}
	}
	return sel, nil
}

// Filter returns the rows matching every non-empty group of sel that has a
// dimension in dims. Groups without a dimension are ignored.
func Filter[T any](rows []T, dims []Dimension[T], sel Selection) []T {
	var active []Dimension[T]
	for _, d := range dims {
		if len(sel[d.ID]) > 0 {
			active = append(active, d)
		}
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(row, active, sel) {
			out = append(out, row)
		}
	}
	return out
}

func matches[T any](row T, dims []Dimension[T], sel Selection) bool {
	for _, d := range dims {
		v, ok := d.Value(row)
		if !ok || !sel.Has(d.ID, v) {
			return false
		}
	}
	return true
}

// Partition splits rows by pred, keeping input order in both halves.
func Partition[T any](rows []T, pred func(T) bool) (match, rest []T) {
	for _, row := range rows {
		if pred(row) {
			match = append(match, row)
		} else {
			rest = append(rest, row)
		}
	}
	return match, rest
}
