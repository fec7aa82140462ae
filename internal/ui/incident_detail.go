package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/toast"
)

// incidentDetail is the read-only view of an incident.
type incidentDetail struct {
	env      env
	id       string
	incident dataset.Incident
	notFound bool
	vp       viewport.Model
}

func newIncidentDetail(e env, id string) *incidentDetail {
	return &incidentDetail{env: e, id: id, vp: viewport.New(80, 20)}
}

func (d *incidentDetail) Init() tea.Cmd {
	inc, err := d.env.store.Incident(d.id)
	if err != nil {
		d.notFound = true
		d.env.logger.Warn("incident not found", zap.String("id", d.id), zap.Error(err))
		return bannerCmd(toast.ErrorBanner("Incident not found", fmt.Sprintf("No incident with ID %s.", d.id)))
	}
	d.incident = inc
	d.id = inc.ID
	return nil
}

func (d *incidentDetail) Title() string {
	if d.notFound {
		return "Incident not found"
	}
	return "Incident " + d.id
}

func (d *incidentDetail) capturesInput() bool { return false }

func (d *incidentDetail) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return cmd
}

func (d *incidentDetail) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	if d.notFound {
		return renderHeading(theme, "Incident not found", "") + "\n\n" +
			styles.MutedText.Render("b  back to the previous screen")
	}
	inc := d.incident
	heading := renderHeading(theme, "Incident "+inc.ID, "") + "  " +
		styles.StatusStyle(string(inc.Status)).Render(string(inc.Status))

	label := func(s string) string { return styles.MutedText.Render(padRight(s, 14)) }
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", label("Case #"), styles.Text.Render(inc.Case))
	fmt.Fprintf(&b, "%s%s\n", label("Issue Type"), styles.Text.Render(inc.IssueType))
	fmt.Fprintf(&b, "%s%s\n\n", label("PIC"), styles.Text.Render(ternary(inc.PIC == "", "-", inc.PIC)))
	b.WriteString(styles.AccentText.Bold(true).Render("Description") + "\n")
	b.WriteString(styles.Text.Width(max(width-2, 20)).Render(inc.Description) + "\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Corrective & Preventive Action") + "\n")
	b.WriteString(styles.Text.Width(max(width-2, 20)).Render(inc.CAPA) + "\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Attachments") + "\n")
	if len(inc.Attachments) == 0 {
		b.WriteString(styles.FaintText.Render("none") + "\n")
	}
	for _, a := range inc.Attachments {
		b.WriteString(styles.Text.Render("• "+a) + "\n")
	}

	d.vp.Width = width
	d.vp.Height = max(height-2, 3)
	d.vp.SetContent(b.String())
	return heading + "\n\n" + d.vp.View()
}
