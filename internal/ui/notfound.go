package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opsboard/internal/nav"
)

type notFoundScreen struct {
	route nav.Route
}

func newNotFoundScreen(route nav.Route) *notFoundScreen {
	return &notFoundScreen{route: route}
}

func (n *notFoundScreen) Init() tea.Cmd { return nil }

func (n *notFoundScreen) Update(msg tea.Msg, keys keyMap) tea.Cmd { return nil }

func (n *notFoundScreen) Title() string { return "Not found" }

func (n *notFoundScreen) capturesInput() bool { return false }

func (n *notFoundScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	return renderHeading(theme, "Page not found", "") + "\n\n" +
		styles.MutedText.Render("Nothing lives at ") + styles.AccentText.Render(n.route.String()) + "\n\n" +
		styles.FaintText.Render("1-4 jump to a section  •  b go back")
}
