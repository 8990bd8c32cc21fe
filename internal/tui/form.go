package tui

import (
	"fmt"
	"strings"

	"github.com/andy/salesdesk/internal/validation"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	name        string
	label       string
	placeholder string
	limit       int
	width       int
}

// fieldForm binds text inputs to a validation.Form. A field is touched
// when focus leaves it, and only touched fields show their errors.
type fieldForm struct {
	specs  []fieldSpec
	inputs []textinput.Model
	state  *validation.Form
	focus  int // -1 when no input has focus
}

func newFieldForm(schema validation.Schema, specs []fieldSpec, initial map[string]string) *fieldForm {
	f := &fieldForm{
		specs:  specs,
		inputs: make([]textinput.Model, len(specs)),
		state:  validation.NewForm(schema, initial),
	}
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = spec.limit
		in.Width = spec.width
		in.SetValue(initial[spec.name])
		f.inputs[i] = in
	}
	return f
}

func (f *fieldForm) len() int {
	return len(f.inputs)
}

// setFocus moves focus to input i, touching the input being left
func (f *fieldForm) setFocus(i int) tea.Cmd {
	if f.focus >= 0 && f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
		if i != f.focus {
			name := f.specs[f.focus].name
			f.state.SetValue(name, f.inputs[f.focus].Value())
			f.state.SetTouched(name)
		}
	}
	f.focus = i
	if i < 0 || i >= len(f.inputs) {
		f.focus = -1
		return nil
	}
	return f.inputs[i].Focus()
}

// update feeds msg to the focused input and syncs its value
func (f *fieldForm) update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.state.SetValue(f.specs[f.focus].name, f.inputs[f.focus].Value())
	return cmd
}

// validate touches every field and reports whether the form is valid
func (f *fieldForm) validate() bool {
	for _, spec := range f.specs {
		f.state.SetTouched(spec.name)
	}
	return f.state.ValidateForm()
}

func (f *fieldForm) values() map[string]string {
	return f.state.Values()
}

func (f *fieldForm) value(field string) string {
	return f.state.Value(field)
}

func (f *fieldForm) view() string {
	var b strings.Builder
	for i, spec := range f.specs {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == f.focus {
			indicator = "> "
			labelStyle = focusStyle
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", indicator, labelStyle.Render(spec.label), f.inputs[i].View())
		for _, msg := range f.state.VisibleErrors(spec.name) {
			b.WriteString(fieldErrStyle.Render("✗ "+msg) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
