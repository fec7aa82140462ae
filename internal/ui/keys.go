package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleSidebar key.Binding
	Back          key.Binding
	Refresh       key.Binding
	Dismiss       key.Binding

	// Sidebar sections
	GoDashboard key.Binding
	GoIncidents key.Binding
	GoTaxes     key.Binding
	GoActivity  key.Binding

	// Tables
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	CycleSort key.Binding
	FlipSort  key.Binding
	Filter    key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Open      key.Binding
	New       key.Binding

	// Dashboard invoice period
	NextMonth key.Binding
	PrevMonth key.Binding
	NextYear  key.Binding

	// Forms
	Submit     key.Binding
	Resolve    key.Binding
	OptionNext key.Binding
	OptionPrev key.Binding
	Cancel     key.Binding

	// Modals
	Confirm      key.Binding
	Toggle       key.Binding
	ClearFilters key.Binding
	Search       key.Binding
	Yes          key.Binding
	No           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Collapse sidebar"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload screen"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss banner"),
		),

		GoDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		GoIncidents: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Incidents"),
		),
		GoTaxes: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Taxes"),
		),
		GoActivity: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Activity"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "Next page"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort column"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Flip sort direction"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next table/field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous table/field"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open row"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New record"),
		),

		NextMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Next invoice month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Previous invoice month"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Next invoice year"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit form"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Resolve incident"),
		),
		OptionNext: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next option"),
		),
		OptionPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous option"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle option"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search options"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GoDashboard, k.GoIncidents, k.GoTaxes, k.GoActivity, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one slice per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoDashboard, k.GoIncidents, k.GoTaxes, k.GoActivity, k.Back, k.Refresh},
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.FocusNext, k.Open, k.New},
		{k.CycleSort, k.FlipSort, k.Filter, k.Search, k.NextMonth, k.PrevMonth, k.NextYear},
		{k.Submit, k.Resolve, k.OptionNext, k.OptionPrev, k.Cancel},
		{k.Dismiss, k.CycleTheme, k.ToggleSidebar, k.Help, k.Quit},
	}
}
