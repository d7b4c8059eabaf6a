package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput wraps bubbles/textinput as a single-line, case-insensitive
// list filter.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, maxWidth int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return FilterInput{Model: ti}
}

// Focus starts editing.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops editing, keeping the current value.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input is being edited.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Reset clears the filter.
func (f *FilterInput) Reset() {
	f.Model.SetValue("")
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Value returns the current filter text.
func (f FilterInput) Value() string {
	return f.Model.Value()
}

// Matches reports whether any of fields contains the filter text.
func (f FilterInput) Matches(fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(f.Model.Value()))
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
