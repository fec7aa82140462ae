package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/attach"
	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/toast"
	"github.com/five82/opsboard/internal/validate"
)

const resolveBlockedTip = "Cannot resolve while status is not Active"

type incidentSubmitDoneMsg struct {
	owner    *incidentForm
	incident dataset.Incident
	resolve  bool
}

type resolveConfirmedMsg struct {
	owner *incidentForm
}

// incidentForm reports a new incident (id == "") or edits an existing one.
// Editing also offers resolving, which is only possible while Active.
type incidentForm struct {
	env      env
	id       string
	form     *form
	loaded   dataset.Incident
	notFound bool
	tip      string
}

func newIncidentForm(e env, id string) *incidentForm {
	fields := []*formField{
		newTextField(validate.FieldCaseNo, "Case Number", "e.g. TYIM250620"),
		newSelectField(validate.FieldIncidentType, "Incident Type", "Select incident type", dataset.IncidentTypes, ""),
		newAreaField(validate.FieldDescription, "Description", "What happened?"),
		newAreaField(validate.FieldCAPA, "Corrective & Preventive Action (CAPA)", "What will prevent it next time?"),
		newTextField(validate.FieldAttachments, "Attachments", "comma-separated file paths"),
	}
	fields[4].hint = fmt.Sprintf("1 to %d files: images, PDF or Word documents", attach.MaxFiles)
	if id == "" {
		statuses := make([]string, len(dataset.IncidentStatuses))
		for i, s := range dataset.IncidentStatuses {
			statuses[i] = string(s)
		}
		fields = append(fields, newSelectField(validate.FieldStatus, "Status", "", statuses, string(dataset.StatusPendingApproval)))
	}
	return &incidentForm{env: e, id: id, form: newForm(fields...)}
}

func (f *incidentForm) editing() bool { return f.id != "" }

func (f *incidentForm) canResolve() bool {
	return f.editing() && !f.notFound && f.loaded.Status == dataset.StatusActive
}

// Init loads the incident being edited. Attachments are not carried over:
// files must be attached again on every save.
func (f *incidentForm) Init() tea.Cmd {
	if !f.editing() {
		return nil
	}
	inc, err := f.env.store.Incident(f.id)
	if err != nil {
		f.notFound = true
		f.env.logger.Warn("incident not found", zap.String("id", f.id), zap.Error(err))
		return bannerCmd(toast.ErrorBanner("Incident not found", fmt.Sprintf("No incident with ID %s.", f.id)))
	}
	f.loaded = inc
	f.id = inc.ID
	f.form.setValue(validate.FieldCaseNo, inc.Case)
	f.form.setValue(validate.FieldIncidentType, inc.IssueType)
	f.form.setValue(validate.FieldDescription, inc.Description)
	f.form.setValue(validate.FieldCAPA, inc.CAPA)
	if len(inc.Attachments) > 0 {
		f.form.field(validate.FieldAttachments).hint = "previously: " + strings.Join(inc.Attachments, ", ")
	}
	return nil
}

func (f *incidentForm) Title() string {
	switch {
	case !f.editing():
		return "Incident Reporting"
	case f.notFound:
		return "Incident not found"
	}
	return "Edit Incident " + f.id
}

func (f *incidentForm) capturesInput() bool { return !f.notFound }

func (f *incidentForm) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case incidentSubmitDoneMsg:
		if msg.owner != f {
			return nil
		}
		return f.finish(msg.incident, msg.resolve)
	case resolveConfirmedMsg:
		if msg.owner != f {
			return nil
		}
		return f.submit(true)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			return backCmd
		case f.notFound:
			return nil
		case key.Matches(msg, keys.Submit):
			return f.submit(false)
		case key.Matches(msg, keys.Resolve):
			return f.askResolve()
		}
		f.tip = ""
		return f.form.handleKey(msg, keys)
	}
	return nil
}

func (f *incidentForm) askResolve() tea.Cmd {
	if !f.editing() || f.form.submitting {
		return nil
	}
	if !f.canResolve() {
		f.tip = resolveBlockedTip
		return nil
	}
	return openModalCmd(&confirmModal{
		title:   "Resolve incident",
		body:    fmt.Sprintf("Are you sure you want to mark %s as Resolved?", f.id),
		confirm: resolveConfirmedMsg{owner: f},
	})
}

func (f *incidentForm) input() validate.IncidentInput {
	in := validate.IncidentInput{
		ID:           f.id,
		CaseNo:       f.form.value(validate.FieldCaseNo),
		IncidentType: f.form.value(validate.FieldIncidentType),
		Description:  f.form.value(validate.FieldDescription),
		CAPA:         f.form.value(validate.FieldCAPA),
		Attachments:  attach.Split(f.form.value(validate.FieldAttachments)),
		Status:       f.form.value(validate.FieldStatus),
	}
	if f.editing() {
		in.Status = string(f.loaded.Status)
	}
	return in
}

// submit validates and starts the simulated request. A failed validation
// only shows the field errors; nothing is sent.
func (f *incidentForm) submit(resolve bool) tea.Cmd {
	if f.form.submitting {
		return nil
	}
	inc, errs := validate.Incident(f.input(), f.editing())
	f.form.errors = errs
	if !errs.OK() {
		f.env.logger.Info("incident form invalid",
			zap.String("id", f.id), zap.Bool("resolve", resolve), zap.Strings("fields", errs.Fields()))
		return bannerCmd(toast.Banner{})
	}
	f.form.submitting = true
	return tea.Sequence(
		bannerCmd(toast.Banner{}),
		delayCmd(f.env.cfg.SubmitDelay, incidentSubmitDoneMsg{owner: f, incident: inc, resolve: resolve}),
	)
}

func (f *incidentForm) finish(inc dataset.Incident, resolve bool) tea.Cmd {
	f.form.submitting = false
	if !f.editing() {
		stored := f.env.store.AddIncident(inc)
		f.env.logger.Info("incident created",
			zap.String("id", stored.ID), zap.String("case", stored.Case), zap.Int("attachments", len(stored.Attachments)))
		return tea.Batch(
			f.form.reset(),
			bannerCmd(toast.SuccessBanner("Incident submitted", "Your incident report has been recorded.")),
		)
	}

	inc.PIC = f.loaded.PIC
	if resolve {
		stored, err := f.env.store.ResolveIncident(inc)
		if err != nil {
			f.env.logger.Error("incident resolve failed", zap.String("id", f.id), zap.Error(err))
			return bannerCmd(toast.ErrorBanner("Resolve failed",
				fmt.Sprintf("We couldn't resolve %s. Please try again.", f.id), err.Error()))
		}
		f.env.logger.Info("incident resolved", zap.String("id", stored.ID))
		return f.redirect(toast.Resolved, stored.ID)
	}

	stored, err := f.env.store.UpdateIncident(inc)
	if err != nil {
		f.env.logger.Error("incident update failed", zap.String("id", f.id), zap.Error(err))
		return bannerCmd(toast.ErrorBanner("Update failed",
			fmt.Sprintf("We couldn't save changes for %s. Please try again.", f.id), err.Error()))
	}
	f.env.logger.Info("incident updated", zap.String("id", stored.ID))
	return f.redirect(toast.Updated, stored.ID)
}

func (f *incidentForm) redirect(kind toast.Kind, id string) tea.Cmd {
	route, err := f.env.router.Build(nav.Incidents)
	if err != nil {
		return nil
	}
	return navigateCmd(toast.Redirect(route, kind, id))
}

func (f *incidentForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	if f.notFound {
		return renderHeading(theme, "Incident not found", "") + "\n\n" +
			styles.MutedText.Render("esc  back to the previous screen")
	}

	heading := renderHeading(theme, f.Title(), "")
	if f.editing() {
		heading += "  " + styles.StatusStyle(string(f.loaded.Status)).Render(string(f.loaded.Status))
	}

	actions := []string{"tab next field", "esc cancel"}
	switch {
	case f.form.submitting:
		actions = append(actions, styles.WarningText.Render("submitting..."))
	case f.editing():
		actions = append(actions, "ctrl+s save")
		if f.canResolve() {
			actions = append(actions, "ctrl+r resolve")
		} else {
			actions = append(actions, styles.FaintText.Strikethrough(true).Render("ctrl+r resolve"))
		}
	default:
		actions = append(actions, "ctrl+s submit")
	}

	out := heading + "\n\n" + f.form.view(theme) + styles.FaintText.Render(strings.Join(actions, "  •  "))
	if f.tip != "" {
		out += "\n" + styles.WarningText.Render(f.tip)
	}
	return out
}
