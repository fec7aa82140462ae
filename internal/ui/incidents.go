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

func incidentDimensions() []table.Dimension[dataset.Incident] {
	return []table.Dimension[dataset.Incident]{
		{ID: "issueType", Title: "Issue Type", Value: func(i dataset.Incident) (string, bool) { return i.IssueType, i.IssueType != "" }},
		{ID: "pic", Title: "PIC", Value: func(i dataset.Incident) (string, bool) { return i.PIC, i.PIC != "" }},
		{ID: "status", Title: "Status", Value: func(i dataset.Incident) (string, bool) { return string(i.Status), i.Status != "" }},
	}
}

func incidentColumns() []table.Column[dataset.Incident] {
	return []table.Column[dataset.Incident]{
		textCol("id", "Incident ID", func(i dataset.Incident) string { return i.ID }),
		textCol("case", "Case #", func(i dataset.Incident) string { return i.Case }),
		textCol("issueType", "Issue Type", func(i dataset.Incident) string { return i.IssueType }),
		textCol("status", "Status", func(i dataset.Incident) string { return string(i.Status) }),
		textCol("pic", "PIC", func(i dataset.Incident) string { return i.PIC }),
	}
}

func isResolved(i dataset.Incident) bool {
	return i.Status == dataset.StatusResolved
}

// incidentsScreen lists incidents in two tables, open and resolved. Both
// share one filter selection; sort and page are per table.
type incidentsScreen struct {
	env      env
	active   *tableView[dataset.Incident]
	resolved *tableView[dataset.Incident]
	groups   []table.FilterGroup
	filter   table.Selection
	focus    int
}

func newIncidentsScreen(e env) *incidentsScreen {
	rows := e.store.Snapshot().Data.Incidents
	resolved, open := table.Partition(rows, isResolved)
	cfg := table.Config[dataset.Incident]{
		Dimensions: incidentDimensions(),
		Columns:    incidentColumns(),
		PageSize:   e.cfg.PageSize.Incidents,
		Comparer:   e.comparer,
	}
	s := &incidentsScreen{
		env:      e,
		active:   newTableView("Active Incidents", open, cfg),
		resolved: newTableView("Resolved Incidents", resolved, cfg),
		groups:   table.Groups(rows, incidentDimensions()),
		filter:   table.Selection{},
	}
	s.setFocus(0)
	return s
}

func (s *incidentsScreen) Init() tea.Cmd { return nil }

func (s *incidentsScreen) Title() string { return "Incident" }

func (s *incidentsScreen) capturesInput() bool { return false }

func (s *incidentsScreen) setFocus(i int) {
	s.focus = (i + 2) % 2
	s.active.focused = s.focus == 0
	s.resolved.focused = s.focus == 1
}

func (s *incidentsScreen) focused() *tableView[dataset.Incident] {
	if s.focus == 1 {
		return s.resolved
	}
	return s.active
}

func (s *incidentsScreen) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case filterAppliedMsg:
		s.filter = msg.selection.Clone()
		s.active.setFilter(s.filter)
		s.resolved.setFilter(s.filter)
		s.env.logger.Info("incident filter applied", zap.Int("selected", s.filter.Count()))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.FocusNext):
			s.setFocus(s.focus + 1)
		case key.Matches(msg, keys.FocusPrev):
			s.setFocus(s.focus - 1)
		case key.Matches(msg, keys.Filter):
			return openModalCmd(newFilterModal(s.groups, s.filter))
		case key.Matches(msg, keys.New):
			return s.env.goTo(nav.IncidentCreate)
		case key.Matches(msg, keys.Open):
			inc, ok := s.focused().selected()
			if !ok {
				return nil
			}
			// Resolved incidents are read-only.
			if isResolved(inc) {
				return s.env.goTo(nav.IncidentDetail, "id", inc.ID)
			}
			return s.env.goTo(nav.IncidentEdit, "id", inc.ID)
		default:
			s.focused().handleKey(msg, keys)
		}
	}
	return nil
}

func (s *incidentsScreen) View(theme Theme, width, height int) string {
	subtitle := "n new  •  enter open  •  f filter"
	if n := s.filter.Count(); n > 0 {
		subtitle = fmt.Sprintf("%d filters applied  •  %s", n, subtitle)
	}
	return renderHeading(theme, "Incident", subtitle) + "\n\n" +
		s.active.view(theme, width) + "\n\n" +
		s.resolved.view(theme, width)
}
