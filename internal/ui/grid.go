package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/five82/opsboard/internal/table"
)

// tableView is one rendered pipeline: a titled grid with a row cursor on the
// current page.
type tableView[T any] struct {
	title   string
	pipe    *table.Pipeline[T]
	cursor  int
	focused bool
}

func newTableView[T any](title string, rows []T, cfg table.Config[T]) *tableView[T] {
	return &tableView[T]{title: title, pipe: table.New(rows, cfg)}
}

// handleKey applies row, page and sort keys. It reports whether the key was used.
func (t *tableView[T]) handleKey(msg tea.KeyMsg, keys keyMap) bool {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.pipe.View().Rows)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.PrevPage):
		t.pipe.PrevPage()
		t.cursor = 0
	case key.Matches(msg, keys.NextPage):
		t.pipe.NextPage()
		t.cursor = 0
	case key.Matches(msg, keys.CycleSort):
		t.cycleSort()
	case key.Matches(msg, keys.FlipSort):
		t.flipSort()
	default:
		return false
	}
	return true
}

func (t *tableView[T]) sortableKeys() []string {
	var keys []string
	for _, c := range t.pipe.Columns() {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// cycleSort walks none -> first sortable column -> ... -> last -> none. Each
// newly selected column starts ascending.
func (t *tableView[T]) cycleSort() {
	keys := t.sortableKeys()
	if len(keys) == 0 {
		return
	}
	current := t.pipe.State().Sort
	next := 0
	if current.Active() {
		next = slices.Index(keys, current.Column) + 1
	}
	if next >= len(keys) {
		t.pipe.ClearSort()
	} else {
		t.pipe.ToggleSort(keys[next])
	}
	t.cursor = 0
}

// flipSort re-selects the current column, which flips its direction.
func (t *tableView[T]) flipSort() {
	current := t.pipe.State().Sort
	if !current.Active() {
		return
	}
	t.pipe.ToggleSort(current.Column)
	t.cursor = 0
}

func (t *tableView[T]) setFilter(sel table.Selection) {
	t.pipe.SetFilter(sel)
	t.clampCursor()
}

func (t *tableView[T]) setSource(rows []T) {
	t.pipe.SetSource(rows)
	t.clampCursor()
}

func (t *tableView[T]) clampCursor() {
	n := len(t.pipe.View().Rows)
	if t.cursor >= n {
		t.cursor = max(n-1, 0)
	}
}

// selected returns the row under the cursor.
func (t *tableView[T]) selected() (T, bool) {
	rows := t.pipe.View().Rows
	if t.cursor < 0 || t.cursor >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[t.cursor], true
}

func (t *tableView[T]) sortLabel() string {
	s := t.pipe.State().Sort
	if !s.Active() {
		return ""
	}
	header := s.Column
	if c, ok := table.FindColumn(t.pipe.Columns(), s.Column); ok {
		header = c.Header
	}
	return fmt.Sprintf("sorted by %s %s", header, sortArrow(s.Direction))
}

func sortArrow(d table.Direction) string {
	if d == table.Descending {
		return "▼"
	}
	return "▲"
}

func (t *tableView[T]) view(theme Theme, width int) string {
	styles := theme.Styles()
	page := t.pipe.View()
	cols := t.pipe.Columns()
	sort := t.pipe.State().Sort

	titleStyle := styles.Text.Bold(true)
	if t.focused {
		titleStyle = styles.AccentText.Bold(true)
	}
	title := titleStyle.Render(t.title)
	if label := t.sortLabel(); label != "" {
		title += "  " + styles.MutedText.Render(label)
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
		if sort.Active() && sort.Column == c.Key {
			headers[i] += " " + sortArrow(sort.Direction)
		}
	}
	rows := make([][]string, len(page.Rows))
	for i, r := range page.Rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.Cell(r)
		}
		rows[i] = cells
	}

	borderColor := theme.Border
	if t.focused {
		borderColor = theme.BorderFocus
	}
	grid := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := styles.Text.Padding(0, 1)
			switch {
			case row == ltable.HeaderRow:
				style = styles.AccentText.Bold(true).Padding(0, 1)
			case t.focused && row == t.cursor:
				style = styles.Selected.Padding(0, 1)
			}
			if col < len(cols) {
				style = style.Align(lipglossAlign(cols[col].Align))
			}
			return style
		})

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(grid.String())
	b.WriteString("\n")
	if page.Total == 0 {
		b.WriteString(styles.MutedText.Render("No rows"))
		b.WriteString("\n")
	}
	summary := page.Summary()
	if from, to := page.Range(); to > 0 {
		summary += fmt.Sprintf(" (%d-%d of %d)", from, to, page.Total)
	}
	b.WriteString(styles.FaintText.Render(pageFooter(summary, page.HasPrev(), page.HasNext())))
	return b.String()
}

func pageFooter(summary string, hasPrev, hasNext bool) string {
	prev := ternary(hasPrev, "[ prev", "      ")
	next := ternary(hasNext, "next ]", "")
	return strings.TrimRight(fmt.Sprintf("%s  %s  %s", prev, summary, next), " ")
}

func lipglossAlign(a table.Align) lipgloss.Position {
	switch a {
	case table.AlignCenter:
		return lipgloss.Center
	case table.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
