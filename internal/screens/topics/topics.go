package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/mode"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// TopicsScreen lists the bank's topics with a type-to-filter input.
type TopicsScreen struct {
	machine   *session.Machine
	topics    []bank.Topic
	durations session.Durations
	book      *ledger.Book

	filter   components.FilterInput
	visible  []int // indexes into topics
	selected int
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.BackHandler = (*TopicsScreen)(nil)

// New creates a TopicsScreen. book may be nil when no ledger is kept.
func New(m *session.Machine, topics []bank.Topic, d session.Durations, book *ledger.Book) *TopicsScreen {
	s := &TopicsScreen{
		machine:   m,
		topics:    topics,
		durations: d,
		book:      book,
		filter:    components.NewFilterInput("filter topics", 40),
	}
	s.refilter()
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Home"},
	}
}

// Back leaves the filter, or returns home.
func (s *TopicsScreen) Back() tea.Cmd {
	if s.filter.Focused() {
		s.filter.Blur()
		return nil
	}
	s.machine.ReturnHome()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if s.filter.Focused() {
		if ok && kmsg.String() == "enter" {
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.refilter()
		return s, cmd
	}
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "/":
		return s, s.filter.Focus()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.visible)-1 {
			s.selected++
		}
	case "enter":
		return s, s.Start()
	}
	return s, nil
}

// Select moves the cursor to the topic with id.
func (s *TopicsScreen) Select(id string) bool {
	for row, i := range s.visible {
		if s.topics[i].ID == id {
			s.selected = row
			return true
		}
	}
	return false
}

// Start begins a session for the topic under the cursor.
func (s *TopicsScreen) Start() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return nil
	}
	if !s.machine.SelectTopic(s.topics[s.visible[s.selected]]) {
		return nil
	}
	var next screen.Screen
	if s.machine.Screen() == session.ScreenModeSelect {
		next = mode.New(s.machine, s.durations)
	} else {
		next = quiz.Start(s.machine)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *TopicsScreen) refilter() {
	s.visible = s.visible[:0]
	for i, t := range s.topics {
		if s.filter.Matches(t.ID, t.Title, t.Description) {
			s.visible = append(s.visible, i)
		}
	}
	if s.selected >= len(s.visible) {
		s.selected = max(len(s.visible)-1, 0)
	}
}

func (s *TopicsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.filter.View())
	b.WriteString("\n\n")

	if len(s.visible) == 0 {
		b.WriteString(theme.Hint.Render("No topics match."))
		return layout.Centered(b.String(), width)
	}

	var entries map[string]*ledger.Entry
	if s.book != nil {
		entries = s.book.Ledger().Topics
	}

	for row, i := range s.visible {
		t := s.topics[i]
		prefix := "  "
		style := theme.Unselected
		if row == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := style.Render(prefix + t.Title)
		line += theme.Hint.Render(fmt.Sprintf("  %s · %d questions", kindLabel(t), len(t.Questions)))
		if e, ok := entries[t.ID]; ok {
			line += lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("  last %.0f%%", e.Percent()))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if row == s.selected && t.Description != "" {
			b.WriteString(theme.Hint.Width(cw).Render("    " + t.Description))
			b.WriteString("\n")
		}
	}
	return layout.Centered(b.String(), width)
}

func kindLabel(t bank.Topic) string {
	switch {
	case t.Marathon:
		return "marathon"
	case t.Kind == bank.KindWritten:
		return "written"
	}
	return "quiz"
}
