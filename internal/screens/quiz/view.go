package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	snap := s.machine.Snapshot()
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	q, ok := snap.Session.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	switch snap.Screen {
	case session.ScreenActive:
		return layout.Centered(s.renderActive(snap, q, cw), width)
	case session.ScreenFeedback:
		return layout.Centered(renderFeedback(snap, q, cw), width)
	}
	return ""
}

func (s *QuizScreen) renderActive(snap session.Snapshot, q bank.Question, cw int) string {
	sess := snap.Session
	var b strings.Builder

	info := fmt.Sprintf("%s · %s · Question %d of %d",
		sess.Topic.Title, sess.Mode, sess.Cursor+1, len(sess.Questions))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	b.WriteString("\n")
	b.WriteString(components.NewTimerBar(sess.Remaining, sess.Duration, cw).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Prompt.Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")

	if sess.HintShown {
		b.WriteString(theme.Callout.Width(cw - 2).Render("Hint: " + q.HintText()))
		b.WriteString("\n\n")
	}
	if sess.Revealed && q.Kind == bank.KindWritten {
		b.WriteString(theme.Callout.Width(cw - 2).Render(
			theme.Warning.Render("Reference answer (score penalty applies)") + "\n" + q.Answer))
		b.WriteString("\n\n")
	}

	if q.Kind == bank.KindChoice {
		b.WriteString(s.choices.View(false, -1, -1))
	} else {
		s.editor.SetSize(cw, editorHeight)
		b.WriteString(s.editor.View())
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.notice))
	}
	return b.String()
}

func renderFeedback(snap session.Snapshot, q bank.Question, cw int) string {
	sess := snap.Session
	var b strings.Builder

	if fb := sess.Feedback; fb != nil {
		style := theme.Incorrect
		if fb.Positive {
			style = theme.Correct
		}
		b.WriteString(style.Render(fb.Headline))
		b.WriteString("\n")
	}
	if rec := sess.Pending; rec != nil && rec.TimedOut {
		b.WriteString(theme.Warning.Render("Time's up!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Prompt.Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")

	switch q.Kind {
	case bank.KindChoice:
		chosen := -1
		if rec := sess.Pending; rec != nil {
			for i, opt := range q.Options {
				if opt == rec.SubmittedText {
					chosen = i
					break
				}
			}
		}
		mc := components.NewMultiChoice(q.Options)
		b.WriteString(mc.View(true, q.Correct, chosen))
		if q.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Callout.Width(cw - 2).Render(q.Explanation))
			b.WriteString("\n")
		}
	default:
		b.WriteString(renderBreakdown(sess))
		b.WriteString("\n")
		b.WriteString(theme.Callout.Width(cw - 2).Render(
			theme.Subtitle.Render("Reference answer") + "\n" + q.Answer))
		b.WriteString("\n")
		if fb := sess.Feedback; fb != nil && len(fb.Suggestions) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Body.Bold(true).Render("To improve:"))
			b.WriteString("\n")
			for _, sg := range fb.Suggestions {
				b.WriteString(theme.Body.Render("  • " + sg))
				b.WriteString("\n")
			}
		}
	}

	if snap.Standing != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(snap.Standing))
	}
	return b.String()
}

func renderBreakdown(sess *session.Session) string {
	if sess.Result == nil {
		return ""
	}
	res := sess.Result
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Score: %d/100", res.Score)))
	b.WriteString("\n")
	if bd := res.Breakdown; bd != nil {
		dim := lipgloss.NewStyle().Foreground(theme.TextDim)
		b.WriteString(dim.Render(fmt.Sprintf(
			"Keywords %d/%d (%.1f)  Length %.1f  Structure %d  Critical thinking %d",
			bd.MatchedKeywords, bd.TotalKeywords, bd.Keywords, bd.Length, bd.Structure, bd.Critical)))
		b.WriteString("\n")
	}
	if sess.Pending != nil && sess.Pending.UsedReveal {
		b.WriteString(theme.Warning.Render("Reveal penalty applied."))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Warning.Render("End this session?") + "\n\n" +
			theme.Body.Render("Progress on this topic will not be saved.") + "\n\n" +
			theme.Hint.Render("Y to quit, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
