package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opsboard/internal/table"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// filterAppliedMsg carries the selection confirmed in a filter modal.
type filterAppliedMsg struct {
	selection table.Selection
}

type filterOption struct {
	group  string
	option string
}

// filterModal edits a draft selection. Nothing is applied until confirmed,
// except Clear, which applies the empty selection at once.
type filterModal struct {
	groups    []table.FilterGroup
	draft     table.Selection
	search    textinput.Model
	searching bool
	rows      []filterOption
	cursor    int
}

func newFilterModal(groups []table.FilterGroup, current table.Selection) *filterModal {
	in := textinput.New()
	in.Placeholder = "Search options"
	in.Prompt = "/ "
	in.CharLimit = 60
	in.Width = 36
	fm := &filterModal{groups: groups, draft: current.Clone(), search: in}
	fm.refresh()
	return fm
}

// visible returns the options of g matching the search query,
// case-insensitively.
func (f *filterModal) visible(g table.FilterGroup) []string {
	q := strings.ToLower(strings.TrimSpace(f.search.Value()))
	if q == "" {
		return g.Options
	}
	var out []string
	for _, opt := range g.Options {
		if strings.Contains(strings.ToLower(opt), q) {
			out = append(out, opt)
		}
	}
	return out
}

func (f *filterModal) refresh() {
	f.rows = f.rows[:0]
	for _, g := range f.groups {
		for _, opt := range f.visible(g) {
			f.rows = append(f.rows, filterOption{group: g.ID, option: opt})
		}
	}
	if f.cursor >= len(f.rows) {
		f.cursor = len(f.rows) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

func (f *filterModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	if f.searching {
		switch km.Type {
		case tea.KeyEnter, tea.KeyEsc:
			f.searching = false
			f.search.Blur()
			return f, nil, false
		}
		var cmd tea.Cmd
		f.search, cmd = f.search.Update(km)
		f.refresh()
		return f, cmd, false
	}
	switch {
	case key.Matches(km, keys.Cancel):
		return f, nil, true
	case key.Matches(km, keys.Confirm):
		sel := f.draft.Clone()
		return f, func() tea.Msg { return filterAppliedMsg{selection: sel} }, true
	case key.Matches(km, keys.Search):
		f.searching = true
		return f, f.search.Focus(), false
	case key.Matches(km, keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(km, keys.Down):
		if f.cursor < len(f.rows)-1 {
			f.cursor++
		}
	case key.Matches(km, keys.Toggle):
		if f.cursor < len(f.rows) {
			row := f.rows[f.cursor]
			f.draft = f.draft.Toggle(row.group, row.option)
		}
	case key.Matches(km, keys.ClearFilters):
		f.draft = table.Selection{}
		return f, func() tea.Msg { return filterAppliedMsg{selection: table.Selection{}} }, true
	}
	return f, nil, false
}

func (f *filterModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filter By"))
	if n := f.draft.Count(); n > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  (%d selected)", n)))
	}
	b.WriteString("\n")
	b.WriteString(f.search.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	i := 0
	for _, g := range f.groups {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(g.Title))
		b.WriteString("\n")
		opts := f.visible(g)
		if len(opts) == 0 {
			b.WriteString(styles.FaintText.Render(ternary(len(g.Options) == 0, "  no options", "  no matches")))
			b.WriteString("\n")
		}
		for _, opt := range opts {
			box := ternary(f.draft.Has(g.ID, opt), "[x]", "[ ]")
			line := fmt.Sprintf("%s %s", box, truncate(opt, 34))
			if i == f.cursor && !f.searching {
				line = styles.Selected.Render(padRight(line, 38))
			} else {
				line = styles.Text.Render(line)
			}
			b.WriteString("  " + line + "\n")
			i++
		}
	}
	b.WriteString("\n")
	if f.searching {
		b.WriteString(styles.FaintText.Render("Enter/Esc: Done searching"))
	} else {
		b.WriteString(styles.FaintText.Render("Space toggle  •  / search  •  c clear  •  Enter apply"))
	}

	return placeModal(theme, width, height, 50, b.String())
}

// confirmModal asks a yes/no question and emits confirm when accepted.
type confirmModal struct {
	title   string
	body    string
	confirm tea.Msg
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes):
		out := c.confirm
		return c, func() tea.Msg { return out }, true
	case key.Matches(km, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/Enter: Confirm  •  n/Esc: Cancel"))
	return placeModal(theme, width, height, 50, b.String())
}

func placeModal(theme Theme, width, height, modalWidth int, content string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
