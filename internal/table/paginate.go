package table

import "fmt"

// Page is one slice of an ordered collection plus its metadata.
type Page[T any] struct {
	Rows       []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns page of rows, clamping page into [1, TotalPages].
// A pageSize below 1 is treated as 1.
func Paginate[T any](rows []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(rows)
	totalPages := TotalPages(total, pageSize)
	page = clampPage(page, totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return Page[T]{
		Rows:       rows[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return max(1, min(page, totalPages))
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Range returns the 1-based positions of the first and last row on the page,
// or 0, 0 for an empty page.
func (p Page[T]) Range() (from, to int) {
	if len(p.Rows) == 0 {
		return 0, 0
	}
	from = (p.Page-1)*p.PageSize + 1
	return from, from + len(p.Rows) - 1
}

// Summary renders "Showing page N of M".
func (p Page[T]) Summary() string {
	return fmt.Sprintf("Showing page %d of %d", p.Page, p.TotalPages)
}
