package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opsboard/internal/validate"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldSelect
)

// formField is one labelled input. name matches the validate field key so
// errors land under the right field.
type formField struct {
	name  string
	label string
	hint  string
	kind  fieldKind

	input textinput.Model
	area  textarea.Model

	options     []string
	placeholder string
	choice      int
	initial     int
}

func newTextField(name, label, placeholder string) *formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 48
	return &formField{name: name, label: label, kind: fieldText, input: in}
}

func newAreaField(name, label, placeholder string) *formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(3)
	return &formField{name: name, label: label, kind: fieldArea, area: ta}
}

// newSelectField builds a selector. A non-empty placeholder adds a leading
// blank choice so that "nothing selected" is possible.
func newSelectField(name, label, placeholder string, options []string, initial string) *formField {
	opts := options
	if placeholder != "" {
		opts = append([]string{""}, options...)
	}
	f := &formField{name: name, label: label, kind: fieldSelect, options: opts, placeholder: placeholder}
	f.setValue(initial)
	f.initial = f.choice
	return f
}

func (f *formField) value() string {
	switch f.kind {
	case fieldArea:
		return f.area.Value()
	case fieldSelect:
		if f.choice < len(f.options) {
			return f.options[f.choice]
		}
		return ""
	default:
		return f.input.Value()
	}
}

func (f *formField) setValue(v string) {
	switch f.kind {
	case fieldArea:
		f.area.SetValue(v)
	case fieldSelect:
		for i, opt := range f.options {
			if opt == v {
				f.choice = i
				return
			}
		}
	default:
		f.input.SetValue(v)
	}
}

func (f *formField) reset() {
	switch f.kind {
	case fieldSelect:
		f.choice = f.initial
	default:
		f.setValue("")
	}
}

func (f *formField) focus() tea.Cmd {
	switch f.kind {
	case fieldArea:
		return f.area.Focus()
	case fieldText:
		return f.input.Focus()
	}
	return nil
}

func (f *formField) blur() {
	switch f.kind {
	case fieldArea:
		f.area.Blur()
	case fieldText:
		f.input.Blur()
	}
}

func (f *formField) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	var cmd tea.Cmd
	switch f.kind {
	case fieldSelect:
		switch {
		case key.Matches(msg, keys.OptionNext):
			f.choice = (f.choice + 1) % len(f.options)
		case key.Matches(msg, keys.OptionPrev):
			f.choice = (f.choice - 1 + len(f.options)) % len(f.options)
		}
	case fieldArea:
		f.area, cmd = f.area.Update(msg)
	default:
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

// form is an ordered set of fields with focus, inline errors and the
// pending-submit flag that disables further submits.
type form struct {
	fields     []*formField
	focus      int
	errors     validate.Errors
	submitting bool
}

func newForm(fields ...*formField) *form {
	f := &form{fields: fields}
	if len(fields) > 0 {
		fields[0].focus()
	}
	return f
}

func (f *form) field(name string) *formField {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld
		}
	}
	return nil
}

func (f *form) value(name string) string {
	if fld := f.field(name); fld != nil {
		return fld.value()
	}
	return ""
}

func (f *form) setValue(name, v string) {
	if fld := f.field(name); fld != nil {
		fld.setValue(v)
	}
}

func (f *form) moveFocus(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].focus()
}

// handleKey routes focus keys and passes everything else to the focused field.
func (f *form) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.FocusNext):
		return f.moveFocus(1)
	case key.Matches(msg, keys.FocusPrev):
		return f.moveFocus(-1)
	}
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].update(msg, keys)
}

// reset clears every field and error and focuses the first field.
func (f *form) reset() tea.Cmd {
	for _, fld := range f.fields {
		fld.reset()
		fld.blur()
	}
	f.errors = nil
	f.focus = 0
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[0].focus()
}

func (f *form) view(theme Theme) string {
	styles := theme.Styles()
	var b strings.Builder
	for i, fld := range f.fields {
		label := fld.label
		if i == f.focus {
			b.WriteString(styles.AccentText.Bold(true).Render("› " + label))
		} else {
			b.WriteString(styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n")

		switch fld.kind {
		case fieldSelect:
			shown := fld.value()
			if shown == "" {
				shown = fld.placeholder
			}
			sel := "‹ " + shown + " ›"
			if i == f.focus {
				b.WriteString("  " + styles.Selected.Render(sel))
			} else {
				b.WriteString("  " + styles.Text.Render(sel))
			}
		case fieldArea:
			b.WriteString(fld.area.View())
		default:
			b.WriteString("  " + fld.input.View())
		}
		b.WriteString("\n")

		if msg := f.errors.First(fld.name); msg != "" {
			b.WriteString("  " + styles.DangerText.Render(msg) + "\n")
		} else if fld.hint != "" {
			b.WriteString("  " + styles.FaintText.Render(fld.hint) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
