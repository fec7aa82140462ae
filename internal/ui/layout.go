package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/toast"
)

const (
	sidebarWidth          = 20
	sidebarCollapsedWidth = 5
)

var sidebarItems = []struct {
	key     string
	label   string
	section string
}{
	{"1", "Dashboard", nav.Dashboard},
	{"2", "Incidents", nav.Incidents},
	{"3", "Taxes", nav.Taxes},
	{"4", "Activity", nav.Activity},
}

// section maps a route name to its sidebar entry ("incident.edit" -> "incident").
func section(name string) string {
	head, _, _ := strings.Cut(name, ".")
	return head
}

// renderMain renders top bar, sidebar, banner, screen and footer.
func (m Model) renderMain() string {
	top := m.renderTopBar()
	footer := m.renderFooter()

	side := m.renderSidebar()
	contentWidth := max(m.width-lipgloss.Width(side)-1, 20)

	var banner string
	if m.banner.Open {
		banner = renderBanner(m.theme, m.banner, contentWidth)
	}
	bodyHeight := max(m.height-lipgloss.Height(top)-lipgloss.Height(footer), 1)
	screenHeight := bodyHeight
	if banner != "" {
		screenHeight -= lipgloss.Height(banner)
	}
	content := m.current.View(m.theme, contentWidth, max(screenHeight, 1))
	content = lipgloss.NewStyle().MaxHeight(max(screenHeight, 1)).MaxWidth(contentWidth).Render(content)

	column := content
	if banner != "" {
		column = lipgloss.JoinVertical(lipgloss.Left, banner, content)
	}
	side = lipgloss.NewStyle().Height(bodyHeight).Render(side)
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, " ", column)

	return lipgloss.JoinVertical(lipgloss.Left, top, body, footer)
}

func (m Model) renderTopBar() string {
	styles := m.theme.Styles()
	logo := styles.AccentText.Bold(true).Render("opsboard")
	title := styles.Text.Render(m.current.Title())
	left := logo + styles.FaintText.Render(" / ") + title

	snap := m.env.store.Snapshot()
	right := styles.MutedText.Render(fmt.Sprintf("%s  •  rev %d  •  %s",
		m.theme.Name, snap.Version, snap.LastUpdated.Format("15:04:05")))

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderSidebar() string {
	styles := m.theme.Styles()
	active := section(m.match.Name)
	width := sidebarWidth
	if m.prefs.SidebarCollapsed {
		width = sidebarCollapsedWidth
	}

	var b strings.Builder
	for _, item := range sidebarItems {
		label := item.key + " " + item.label
		if m.prefs.SidebarCollapsed {
			label = item.key
		}
		line := padRight(" "+label, width-2)
		if item.section == active {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.MutedText.Render(line))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if m.history.Len() > 1 {
		parts = append(parts, "b Back")
	}
	if m.banner.Open {
		parts = append(parts, "x Dismiss")
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  •  "))
}

func renderBanner(theme Theme, b toast.Banner, width int) string {
	styles := theme.Styles()
	color := theme.Success
	titleStyle := styles.SuccessText
	if b.Variant == toast.Error {
		color = theme.Danger
		titleStyle = styles.DangerText
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.Title))
	if b.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Text.Render(b.Description))
	}
	for _, d := range b.Details {
		sb.WriteString("\n")
		sb.WriteString(styles.MutedText.Render("• " + d))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Width(max(width-2, 10)).
		Render(sb.String())
}

// renderHeading renders a screen heading with an optional muted subtitle.
func renderHeading(theme Theme, title, subtitle string) string {
	styles := theme.Styles()
	out := styles.Text.Bold(true).Render(title)
	if subtitle != "" {
		out += "  " + styles.MutedText.Render(subtitle)
	}
	return out
}
