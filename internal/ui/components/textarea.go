package components

import (
	"strconv"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// AnswerCharLimit caps written answers.
const AnswerCharLimit = 4000

// AnswerEditor wraps bubbles/textarea for multi-line written answers.
type AnswerEditor struct {
	Model textarea.Model
}

// NewAnswerEditor creates a focused editor of the given size.
func NewAnswerEditor(placeholder string, width, height int) AnswerEditor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = AnswerCharLimit
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return AnswerEditor{Model: ta}
}

// Init returns the cursor blink command.
func (e AnswerEditor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e AnswerEditor) Update(msg tea.Msg) (AnswerEditor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// SetSize resizes the editor.
func (e *AnswerEditor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Value returns the answer text.
func (e AnswerEditor) Value() string {
	return e.Model.Value()
}

// Reset clears the editor.
func (e *AnswerEditor) Reset() {
	e.Model.Reset()
}

// View renders the editor with a character counter underneath.
func (e AnswerEditor) View() string {
	count := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(counter(utf8.RuneCountInString(e.Model.Value())))
	return e.Model.View() + "\n" + count
}

func counter(n int) string {
	return strconv.Itoa(n) + " characters"
}
