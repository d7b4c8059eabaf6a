package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ResultsScreen displays the summary of a finished session.
type ResultsScreen struct {
	machine *session.Machine
	restart func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackHandler = (*ResultsScreen)(nil)

// New creates a ResultsScreen. restart builds the screen shown after the
// machine restarts the session.
func New(m *session.Machine, restart func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{machine: m, restart: restart}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Topics"},
		{Key: "R", Description: "Retry"},
		{Key: "Esc", Description: "Home"},
	}
}

// Back returns to the home screen.
func (s *ResultsScreen) Back() tea.Cmd {
	s.machine.ReturnHome()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "t":
		if s.machine.BackToTopics() {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	case "r":
		if s.machine.Restart() && s.restart != nil {
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "h":
		return s, s.Back()
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.machine.Snapshot().Summary
	if sum == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Session complete!"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(
		fmt.Sprintf("%s · %s · %s", sum.TopicTitle, sum.Mode, components.FormatClock(int(sum.Duration.Seconds())))))
	b.WriteString("\n\n")

	if sum.TotalQuestions == 0 {
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("This topic has no questions yet."))
		return layout.Centered(b.String(), width)
	}

	b.WriteString(theme.Body.Width(cw).Align(lipgloss.Center).Render(statsLine(sum)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render(fmt.Sprintf(
		"Timed out: %d   Reveals: %d   Hints: %d",
		sum.TimedOut, sum.Revealed, sum.HintsUsed)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")
	for i, a := range sum.Answers {
		b.WriteString(answerLine(i, a, sum.Kind))
		b.WriteString("\n")
	}
	return layout.Centered(b.String(), width)
}

func statsLine(sum *session.Summary) string {
	if sum.Kind == bank.KindWritten {
		return fmt.Sprintf("Average: %.0f/100   Points: %.1f/%d (%.0f%%)   Passed: %d/%d",
			sum.AverageScore(), sum.PointsEarned, sum.PointsPossible, sum.Percent(),
			sum.Passed, sum.TotalQuestions)
	}
	return fmt.Sprintf("Score: %d   Correct: %d/%d (%.0f%%)",
		sum.RunningScore, sum.Passed, sum.TotalQuestions, sum.Percent())
}

func answerLine(i int, a session.AnswerRecord, kind bank.Kind) string {
	score := fmt.Sprintf("%+d", a.Score)
	if kind == bank.KindWritten {
		score = fmt.Sprintf("%3d/100", a.Score)
	}
	var flags []string
	if a.TimedOut {
		flags = append(flags, "timed out")
	}
	if a.UsedReveal {
		flags = append(flags, "revealed")
	}
	if a.UsedHint {
		flags = append(flags, "hint")
	}

	style := theme.Incorrect
	if a.Passed {
		style = theme.Correct
	}
	line := fmt.Sprintf("%2d. %-24s %s  %s", i+1, a.QuestionID, style.Render(score),
		components.FormatClock(a.TimeSpentSeconds))
	if len(flags) > 0 {
		line += theme.Hint.Render("  (" + strings.Join(flags, ", ") + ")")
	}
	return line
}
