package ui

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opsboard/internal/logtail"
)

const activityLines = 500

type activityLoadedMsg struct {
	owner   *activityScreen
	entries []logtail.Entry
	err     error
}

// activityScreen tails the console's own log.
type activityScreen struct {
	env     env
	vp      viewport.Model
	entries []logtail.Entry
	err     error
	loaded  bool
}

func newActivityScreen(e env) *activityScreen {
	return &activityScreen{env: e, vp: viewport.New(80, 20)}
}

func (a *activityScreen) Init() tea.Cmd {
	path := a.env.cfg.LogPath
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, activityLines)
		return activityLoadedMsg{owner: a, entries: entries, err: err}
	}
}

func (a *activityScreen) Title() string       { return "Activity" }
func (a *activityScreen) capturesInput() bool { return false }

func (a *activityScreen) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	if msg, ok := msg.(activityLoadedMsg); ok {
		if msg.owner != a {
			return nil
		}
		a.entries, a.err, a.loaded = msg.entries, msg.err, true
		a.vp.GotoBottom()
		return nil
	}
	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	return cmd
}

func (a *activityScreen) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	heading := renderHeading(theme, "Activity", a.env.cfg.LogPath)

	var body string
	switch {
	case !a.loaded:
		body = styles.MutedText.Render("Loading log...")
	case errors.Is(a.err, fs.ErrNotExist):
		body = styles.MutedText.Render("No activity recorded yet.")
	case a.err != nil:
		body = styles.DangerText.Render("Could not read log: " + a.err.Error())
	case len(a.entries) == 0:
		body = styles.MutedText.Render("No activity recorded yet.")
	default:
		lines := make([]string, len(a.entries))
		for i, e := range a.entries {
			lines[i] = levelStyle(styles, e.Level).Render(truncate(e.Format(), max(width-1, 10)))
		}
		atBottom := a.vp.AtBottom()
		a.vp.Width = width
		a.vp.Height = max(height-3, 3)
		a.vp.SetContent(strings.Join(lines, "\n"))
		if atBottom {
			a.vp.GotoBottom()
		}
		return heading + "\n\n" + a.vp.View()
	}
	return heading + "\n\n" + body
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "dpanic", "panic", "fatal":
		return styles.DangerText
	case "warn":
		return styles.WarningText
	case "info":
		return styles.InfoText
	case "debug":
		return styles.FaintText
	}
	return styles.Text
}
