package mode

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

var descriptions = map[session.Mode]string{
	session.ModePractice: "Take your time, with room to think",
	session.ModeExam:     "Exam conditions",
}

// ModeScreen lets the learner pick practice or exam for a written topic.
type ModeScreen struct {
	machine *session.Machine
	menu    components.Menu
}

var _ screen.Screen = (*ModeScreen)(nil)
var _ screen.KeyHintProvider = (*ModeScreen)(nil)
var _ screen.BackHandler = (*ModeScreen)(nil)

// New creates a ModeScreen for a machine on the mode-select screen.
func New(m *session.Machine, d session.Durations) *ModeScreen {
	s := &ModeScreen{machine: m}
	items := make([]components.MenuItem, 0, len(session.WrittenModes))
	for _, md := range session.WrittenModes {
		items = append(items, components.MenuItem{
			Label:       strings.ToUpper(string(md[:1])) + string(md[1:]),
			Description: fmt.Sprintf("%s per question · %s", components.FormatClock(d.For(md)), descriptions[md]),
			Action:      func() tea.Cmd { return s.choose(md) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *ModeScreen) choose(md session.Mode) tea.Cmd {
	if !s.machine.SelectMode(md) {
		return nil
	}
	next := quiz.Start(s.machine)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ModeScreen) Init() tea.Cmd {
	return nil
}

func (s *ModeScreen) Title() string {
	if sess := s.machine.Snapshot().Session; sess != nil {
		return sess.Topic.Title
	}
	return "Mode"
}

func (s *ModeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Topics"},
	}
}

// Back returns to topic selection.
func (s *ModeScreen) Back() tea.Cmd {
	s.machine.BackToTopics()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ModeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ModeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose a mode"))
	b.WriteString("\n")
	if sess := s.machine.Snapshot().Session; sess != nil {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d questions", sess.Topic.Title, len(sess.Questions))))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return layout.Centered(theme.Card.Render(b.String()), width)
}
