package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// createForm is a minimal multi-field form for admin create flows.
// Field validation happens in the submit closure so a rejected draft
// never reaches the network.
type createForm struct {
	labels  []string
	inputs  []textinput.Model
	focused int
	errMsg  string
}

func newCreateForm(labels []string) createForm {
	inputs := make([]textinput.Model, len(labels))
	for idx, label := range labels {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = label
		in.CharLimit = 512
		inputs[idx] = in
	}

	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return createForm{labels: labels, inputs: inputs}
}

func (f *createForm) values() []string {
	vals := make([]string, len(f.inputs))
	for idx := range f.inputs {
		vals[idx] = strings.TrimSpace(f.inputs[idx].Value())
	}

	return vals
}

func (f *createForm) next() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *createForm) prev() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *createForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)

	return cmd
}

func (f *createForm) view(title string) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")

	for idx := range f.inputs {
		b.WriteString(styles.field.Render(f.labels[idx]))
		b.WriteString("\n")
		b.WriteString(f.inputs[idx].View())
		b.WriteString("\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("tab/shift+tab move, enter submit, esc cancel"))

	return b.String()
}
