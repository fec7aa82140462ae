package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/toast"
	"github.com/five82/opsboard/internal/validate"
)

// taxSubmitDoneMsg arrives after the simulated request latency.
type taxSubmitDoneMsg struct {
	owner *taxForm
	tax   dataset.Tax
}

// taxForm creates a tax (id == "") or edits an existing one.
type taxForm struct {
	env      env
	id       string
	form     *form
	notFound bool
}

func newTaxForm(e env, id string) *taxForm {
	return &taxForm{
		env: e,
		id:  id,
		form: newForm(
			newTextField(validate.FieldNameEN, "Tax Name (EN)", "e.g. Consumption Tax"),
			newTextField(validate.FieldNameJP, "Tax Name (JP)", "optional"),
			newTextField(validate.FieldRate, "Tax Rate (%)", "0 - 100"),
		),
	}
}

func (f *taxForm) editing() bool { return f.id != "" }

func (f *taxForm) Init() tea.Cmd {
	if !f.editing() {
		return nil
	}
	t, err := f.env.store.Tax(f.id)
	if err != nil {
		f.notFound = true
		f.env.logger.Warn("tax not found", zap.String("id", f.id), zap.Error(err))
		return bannerCmd(toast.ErrorBanner("Tax not found", fmt.Sprintf("No tax with ID %s.", f.id)))
	}
	f.id = t.ID
	f.form.setValue(validate.FieldNameEN, t.NameEN)
	f.form.setValue(validate.FieldNameJP, t.NameJP)
	f.form.setValue(validate.FieldRate, strconv.FormatFloat(t.Rate, 'f', -1, 64))
	return nil
}

func (f *taxForm) Title() string {
	switch {
	case !f.editing():
		return "Create Tax"
	case f.notFound:
		return "Tax not found"
	}
	return "Edit Tax " + f.id
}

func (f *taxForm) capturesInput() bool { return !f.notFound }

func (f *taxForm) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case taxSubmitDoneMsg:
		if msg.owner != f {
			return nil
		}
		return f.finish(msg.tax)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			return backCmd
		case f.notFound:
			return nil
		case key.Matches(msg, keys.Submit):
			return f.submit()
		}
		return f.form.handleKey(msg, keys)
	}
	return nil
}

func (f *taxForm) submit() tea.Cmd {
	if f.form.submitting {
		return nil
	}
	t, errs := validate.Tax(validate.TaxInput{
		NameEN: f.form.value(validate.FieldNameEN),
		NameJP: f.form.value(validate.FieldNameJP),
		Rate:   f.form.value(validate.FieldRate),
	})
	f.form.errors = errs
	if !errs.OK() {
		f.env.logger.Info("tax form invalid", zap.Strings("fields", errs.Fields()))
		return bannerCmd(toast.Banner{})
	}
	f.form.submitting = true
	return tea.Sequence(
		bannerCmd(toast.Banner{}),
		delayCmd(f.env.cfg.SubmitDelay, taxSubmitDoneMsg{owner: f, tax: t}),
	)
}

func (f *taxForm) finish(t dataset.Tax) tea.Cmd {
	f.form.submitting = false
	if !f.editing() {
		stored := f.env.store.AddTax(t)
		f.env.logger.Info("tax created", zap.String("id", stored.ID), zap.Float64("rate", stored.Rate))
		return tea.Batch(
			f.form.reset(),
			bannerCmd(toast.SuccessBanner("Successfully uploaded", "Your new tax record has been saved.")),
		)
	}

	t.ID = f.id
	stored, err := f.env.store.UpdateTax(t)
	if err != nil {
		f.env.logger.Error("tax update failed", zap.String("id", f.id), zap.Error(err))
		return bannerCmd(toast.ErrorBanner("Update failed", "A server or network error occurred. Please try again.", err.Error()))
	}
	f.env.logger.Info("tax updated", zap.String("id", stored.ID))
	route, err := f.env.router.Build(nav.Taxes)
	if err != nil {
		return nil
	}
	return navigateCmd(toast.Redirect(route, toast.Updated, stored.ID))
}

func (f *taxForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	if f.notFound {
		return renderHeading(theme, "Tax not found", "") + "\n\n" +
			styles.MutedText.Render("esc  back to the previous screen")
	}
	action := "ctrl+s save"
	if !f.editing() {
		action = "ctrl+s upload"
	}
	if f.form.submitting {
		action = styles.WarningText.Render("saving...")
	}
	return renderHeading(theme, f.Title(), "") + "\n\n" +
		f.form.view(theme) +
		styles.FaintText.Render("tab next field  •  esc cancel  •  ") + action
}
