package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/results"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

const (
	editorWidth  = 72
	editorHeight = 8
)

// QuizScreen drives the active and feedback states of a session.
type QuizScreen struct {
	machine *session.Machine

	editor   components.AnswerEditor
	choices  components.MultiChoice
	question string // ID the widgets were built for

	// armed is the token of the tick in flight, zero when none.
	armed       int
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for a machine already in the active state.
func New(m *session.Machine) *QuizScreen {
	s := &QuizScreen{machine: m}
	s.rebuild()
	return s
}

// Start returns the screen matching where the machine is after a session
// starts: the quiz, or results straight away for a topic with no questions.
func Start(m *session.Machine) screen.Screen {
	if m.Screen() == session.ScreenResults {
		return newResults(m)
	}
	return New(m)
}

func newResults(m *session.Machine) screen.Screen {
	return results.New(m, func() screen.Screen { return Start(m) })
}

func (s *QuizScreen) Init() tea.Cmd {
	cmd := s.sync()
	if s.written() {
		return tea.Batch(cmd, s.editor.Init())
	}
	return cmd
}

func (s *QuizScreen) Title() string {
	snap := s.machine.Snapshot()
	if snap.Session == nil {
		return "Quiz"
	}
	return snap.Session.Topic.Title
}

// Status shows progress and the running score in the header.
func (s *QuizScreen) Status() string {
	sess := s.machine.Snapshot().Session
	if sess == nil || len(sess.Questions) == 0 {
		return ""
	}
	return fmt.Sprintf("Q %d/%d  Score %d  ", sess.Cursor+1, len(sess.Questions), sess.RunningScore)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	snap := s.machine.Snapshot()
	if snap.Screen == session.ScreenFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.written() {
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+T", Description: fmt.Sprintf("Hint (%d left)", snap.HintsLeft)},
			{Key: "Ctrl+R", Description: "Reveal"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "H", Description: fmt.Sprintf("Hint (%d left)", snap.HintsLeft)},
		{Key: "Esc", Description: "Quit"},
	}
}

// Back asks for confirmation before abandoning the session.
func (s *QuizScreen) Back() tea.Cmd {
	s.confirmQuit = !s.confirmQuit
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)

	case components.ChoiceMsg:
		return s, s.answerChoice(msg.Index)

	case tea.KeyMsg:
		if s.confirmQuit {
			return s, s.handleConfirm(msg)
		}
		switch s.machine.Screen() {
		case session.ScreenActive:
			return s, s.handleActiveKey(msg)
		case session.ScreenFeedback:
			return s, s.handleFeedbackKey(msg)
		}
		return s, nil
	}

	if s.written() && s.machine.Screen() == session.ScreenActive {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg tickMsg) tea.Cmd {
	if !s.machine.Tick(msg.token) {
		return s.sync()
	}
	if s.machine.TimerToken() == msg.token {
		return tick(msg.token)
	}
	// Timed out.
	s.armed = 0
	s.confirmQuit = false
	return s.sync()
}

func (s *QuizScreen) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		s.confirmQuit = false
		s.machine.ReturnHome()
		return func() tea.Msg { return router.PopToRootMsg{} }
	case "n", "N", "esc":
		s.confirmQuit = false
	}
	return nil
}

func (s *QuizScreen) handleActiveKey(msg tea.KeyMsg) tea.Cmd {
	s.notice = ""
	if s.written() {
		switch msg.String() {
		case "ctrl+s":
			if !s.machine.SubmitAnswer(s.editor.Value()) {
				s.notice = "Write an answer before submitting."
			}
			return s.sync()
		case "ctrl+r":
			s.machine.RevealAnswer()
			return nil
		case "ctrl+t":
			s.useHint()
			return nil
		}
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		s.machine.UpdateDraft(s.editor.Value())
		return cmd
	}

	if msg.String() == "h" {
		s.useHint()
		return nil
	}
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return cmd
}

func (s *QuizScreen) handleFeedbackKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "space", "n":
		if !s.machine.Advance() {
			return nil
		}
		if s.machine.Screen() == session.ScreenResults {
			next := newResults(s.machine)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s.sync()
	}
	return nil
}

func (s *QuizScreen) answerChoice(index int) tea.Cmd {
	if s.machine.Screen() != session.ScreenActive {
		return nil
	}
	if !s.machine.ChooseOption(index) || !s.machine.SubmitAnswer("") {
		return nil
	}
	return s.sync()
}

func (s *QuizScreen) useHint() {
	snap := s.machine.Snapshot()
	if snap.Session != nil && snap.Session.HintShown {
		return
	}
	if !s.machine.UseHint() {
		if snap.HintsLeft == 0 {
			s.notice = "No hints left this session."
		} else {
			s.notice = "No hint for this question."
		}
	}
}

// sync rebuilds the input widgets when the question changes and arms the
// timer when the machine expects a tick nobody has scheduled yet.
func (s *QuizScreen) sync() tea.Cmd {
	focus := s.rebuild()
	token := s.machine.TimerToken()
	if token == 0 || token == s.armed {
		return focus
	}
	s.armed = token
	return tea.Batch(tick(token), focus)
}

func (s *QuizScreen) rebuild() tea.Cmd {
	q, ok := s.current()
	if !ok || q.ID == s.question {
		return nil
	}
	s.question = q.ID
	s.notice = ""
	if q.Kind == bank.KindChoice {
		s.choices = components.NewMultiChoice(q.Options)
		return nil
	}
	s.editor = components.NewAnswerEditor("Type your answer...", editorWidth, editorHeight)
	return s.editor.Init()
}

func (s *QuizScreen) current() (bank.Question, bool) {
	return s.machine.Snapshot().Session.Current()
}

func (s *QuizScreen) written() bool {
	q, ok := s.current()
	return ok && q.Kind == bank.KindWritten
}
