package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/table"
)

func taxDimensions() []table.Dimension[dataset.Tax] {
	return []table.Dimension[dataset.Tax]{
		{ID: "rate", Title: "Tax Rate", Value: func(t dataset.Tax) (string, bool) { return formatRate(t.Rate), true }},
	}
}

func taxColumns() []table.Column[dataset.Tax] {
	return []table.Column[dataset.Tax]{
		textCol("id", "ID", func(t dataset.Tax) string { return t.ID }),
		textCol("name_en", "Name (EN)", func(t dataset.Tax) string { return t.NameEN }),
		{Key: "name_jp", Header: "Name (JP)", Render: func(t dataset.Tax) string { return t.NameJP }},
		{Key: "rate", Header: "Tax Rate", Sortable: true, Align: table.AlignCenter,
			Value:  func(t dataset.Tax) table.Value { return table.Number(t.Rate) },
			Render: func(t dataset.Tax) string { return formatRate(t.Rate) }},
	}
}

type taxesScreen struct {
	env    env
	taxes  *tableView[dataset.Tax]
	groups []table.FilterGroup
	filter table.Selection
}

func newTaxesScreen(e env) *taxesScreen {
	rows := e.store.Snapshot().Data.Taxes
	s := &taxesScreen{
		env: e,
		taxes: newTableView("Taxes", rows, table.Config[dataset.Tax]{
			Dimensions: taxDimensions(),
			Columns:    taxColumns(),
			PageSize:   e.cfg.PageSize.Taxes,
			Comparer:   e.comparer,
		}),
		groups: table.Groups(rows, taxDimensions()),
		filter: table.Selection{},
	}
	s.taxes.focused = true
	return s
}

func (s *taxesScreen) Init() tea.Cmd { return nil }

func (s *taxesScreen) Title() string { return "Dashboard Taxes" }

func (s *taxesScreen) capturesInput() bool { return false }

func (s *taxesScreen) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case filterAppliedMsg:
		s.filter = msg.selection.Clone()
		s.taxes.setFilter(s.filter)
		s.env.logger.Info("tax filter applied", zap.Strings("rate", s.filter.Values("rate")))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Filter):
			return openModalCmd(newFilterModal(s.groups, s.filter))
		case key.Matches(msg, keys.New):
			return s.env.goTo(nav.TaxCreate)
		case key.Matches(msg, keys.Open):
			if t, ok := s.taxes.selected(); ok {
				return s.env.goTo(nav.TaxEdit, "id", t.ID)
			}
		default:
			s.taxes.handleKey(msg, keys)
		}
	}
	return nil
}

func (s *taxesScreen) View(theme Theme, width, height int) string {
	subtitle := "n new  •  enter edit  •  f filter"
	if n := s.filter.Count(); n > 0 {
		subtitle = fmt.Sprintf("%d filters applied  •  %s", n, subtitle)
	}
	return renderHeading(theme, "Taxes", subtitle) + "\n\n" + s.taxes.view(theme, width)
}
