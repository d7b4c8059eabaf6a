package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor; the
// caller decides what a choice means.
type MultiChoice struct {
	Options  []string
	Selected int
}

// ChoiceMsg is returned when an option is picked with a number key or Enter.
type ChoiceMsg struct {
	Index int
}

// NewMultiChoice creates a selector with the cursor on the first option.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor; Enter or a number key picks an option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, pick(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			return m, pick(m.Selected)
		}
	}
	return m, nil
}

func pick(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the options. When result is true the correct option is shown
// in green and a wrong chosen option in red.
func (m MultiChoice) View(result bool, correct, chosen int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !result {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case result && i == correct:
			style = theme.Correct
		case result && i == chosen:
			style = theme.Incorrect
		case result:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
