package quiz

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/results"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
)

const strategyAnswer = "However, this demonstrates strategic alignment. For example, cost leadership shows clear examples. Furthermore, differentiation matters."

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func newMachine() *session.Machine {
	return session.NewMachine(session.Options{
		Orderer:   session.IdentityOrderer{},
		Durations: session.Durations{Choice: 3, Marathon: 2, Practice: 5, Exam: 4},
		Logger:    zerolog.Nop(),
		Clock:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
}

func choiceTopic(n int) bank.Topic {
	t := bank.Topic{ID: "week-1", Title: "Week 1", Kind: bank.KindChoice}
	for i := 0; i < n; i++ {
		t.Questions = append(t.Questions, bank.Question{
			ID:      fmt.Sprintf("c%d", i),
			Prompt:  "Which is first?",
			Kind:    bank.KindChoice,
			Options: []string{"alpha", "beta", "gamma"},
			Correct: 0,
			Hint:    "Greek alphabet",
		})
	}
	return t
}

func writtenTopic() bank.Topic {
	return bank.Topic{ID: "essay", Title: "Strategy", Kind: bank.KindWritten, Questions: []bank.Question{{
		ID:       "w0",
		Prompt:   "Discuss competitive strategy.",
		Kind:     bank.KindWritten,
		Answer:   "Porter's generic strategies.",
		Keywords: []string{"strategic alignment", "cost leadership", "differentiation"},
		Marks:    10,
	}}}
}

func startChoice(t *testing.T, n int) (*session.Machine, *QuizScreen) {
	t.Helper()
	m := newMachine()
	m.OpenTopics()
	if !m.SelectTopic(choiceTopic(n)) {
		t.Fatal("select topic failed")
	}
	return m, New(m)
}

func startWritten(t *testing.T) (*session.Machine, *QuizScreen) {
	t.Helper()
	m := newMachine()
	m.OpenTopics()
	m.SelectTopic(writtenTopic())
	if !m.SelectMode(session.ModePractice) {
		t.Fatal("select mode failed")
	}
	return m, New(m)
}

// pick presses a number key and feeds the resulting choice back in.
func pick(t *testing.T, s *QuizScreen, r rune) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(keyPress(r))
	if cmd == nil {
		t.Fatalf("no command for key %q", r)
	}
	msg, ok := cmd().(components.ChoiceMsg)
	if !ok {
		t.Fatalf("key %q did not produce a choice", r)
	}
	_, cmd = s.Update(msg)
	return cmd
}

func TestQuizScreen_InitArmsTimer(t *testing.T) {
	m, s := startChoice(t, 1)
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to arm the timer")
	}
	if s.armed != m.TimerToken() {
		t.Errorf("armed = %d, want %d", s.armed, m.TimerToken())
	}
}

func TestQuizScreen_ChoiceFlow(t *testing.T) {
	m, s := startChoice(t, 2)
	s.Init()

	pick(t, s, '1')
	if m.Screen() != session.ScreenFeedback {
		t.Fatalf("screen = %v, want feedback", m.Screen())
	}
	if got := m.Snapshot().Session.RunningScore; got != 1 {
		t.Errorf("RunningScore = %d, want 1", got)
	}
	if !strings.Contains(s.View(100, 30), "Which is first?") {
		t.Error("feedback view should repeat the prompt")
	}

	s.Update(enter())
	if m.Screen() != session.ScreenActive || m.Snapshot().Session.Cursor != 1 {
		t.Fatalf("expected second question, screen %v", m.Screen())
	}

	pick(t, s, '2')
	if got := m.Snapshot().Session.RunningScore; got != 0 {
		t.Errorf("RunningScore = %d, want 0", got)
	}

	_, cmd := s.Update(enter())
	if m.Screen() != session.ScreenResults {
		t.Fatalf("screen = %v, want results", m.Screen())
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected a replace with the results screen")
	}
	if _, ok := msg.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("replaced with %T", msg.Screen)
	}
}

func TestQuizScreen_TimeoutSubmits(t *testing.T) {
	m, s := startChoice(t, 1)
	s.Init()
	token := m.TimerToken()

	_, cmd := s.Update(tickMsg{token: token})
	if cmd == nil {
		t.Error("expected the timer to re-arm after a tick")
	}
	s.Update(tickMsg{token: token})
	s.Update(tickMsg{token: token})

	snap := m.Snapshot()
	if snap.Screen != session.ScreenFeedback {
		t.Fatalf("screen = %v, want feedback", snap.Screen)
	}
	if !snap.Session.Pending.TimedOut || snap.Session.Pending.Score != -1 {
		t.Errorf("pending = %+v, want timed out with -1", snap.Session.Pending)
	}
	if !strings.Contains(s.View(100, 30), "Time's up!") {
		t.Error("view should say the time ran out")
	}
}

func TestQuizScreen_StaleTickIgnored(t *testing.T) {
	m, s := startChoice(t, 1)
	s.Init()
	before := m.Snapshot().Session.Remaining

	if _, cmd := s.Update(tickMsg{token: m.TimerToken() + 7}); cmd != nil {
		t.Error("stale tick should not re-arm")
	}
	if got := m.Snapshot().Session.Remaining; got != before {
		t.Errorf("Remaining = %d, want %d", got, before)
	}
}

func TestQuizScreen_ChoiceHint(t *testing.T) {
	m, s := startChoice(t, 1)
	s.Update(keyPress('h'))

	snap := m.Snapshot()
	if !snap.Session.HintShown || snap.HintsLeft != session.DefaultHintLimit-1 {
		t.Errorf("hint not used: shown=%v left=%d", snap.Session.HintShown, snap.HintsLeft)
	}
	if !strings.Contains(s.View(100, 30), "Greek alphabet") {
		t.Error("view should show the hint")
	}
}

func TestQuizScreen_WrittenTyping(t *testing.T) {
	m, s := startWritten(t)

	for _, r := range "draft" {
		s.Update(keyPress(r))
	}
	if got := m.Snapshot().Session.Draft; got != "draft" {
		t.Errorf("Draft = %q, want %q", got, "draft")
	}
}

func TestQuizScreen_WrittenBlankSubmitIgnored(t *testing.T) {
	m, s := startWritten(t)

	s.Update(ctrl('s'))
	if m.Screen() != session.ScreenActive {
		t.Fatalf("screen = %v, want active", m.Screen())
	}
	if s.notice == "" {
		t.Error("expected a notice for a blank answer")
	}
}

func TestQuizScreen_WrittenSubmit(t *testing.T) {
	m, s := startWritten(t)
	s.editor.Model.SetValue(strategyAnswer)

	s.Update(ctrl('s'))
	snap := m.Snapshot()
	if snap.Screen != session.ScreenFeedback {
		t.Fatalf("screen = %v, want feedback", snap.Screen)
	}
	if snap.Session.Pending.Score != 75 {
		t.Errorf("Score = %d, want 75", snap.Session.Pending.Score)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Score: 75/100", "Porter's generic strategies."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuizScreen_RevealAndKeywordHint(t *testing.T) {
	m, s := startWritten(t)

	s.Update(ctrl('r'))
	s.Update(ctrl('t'))
	snap := m.Snapshot()
	if !snap.Session.Revealed || !snap.Session.HintShown {
		t.Fatalf("revealed=%v hint=%v", snap.Session.Revealed, snap.Session.HintShown)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Porter's generic strategies.") {
		t.Error("view should show the revealed answer")
	}
	if !strings.Contains(view, "strategic alignment") {
		t.Error("view should show the keyword hint")
	}

	s.editor.Model.SetValue(strategyAnswer)
	s.Update(ctrl('s'))
	if got := m.Snapshot().Session.Pending.Score; got != 74 {
		t.Errorf("Score = %d, want 74 after reveal", got)
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	m, s := startChoice(t, 1)

	s.Back()
	if !strings.Contains(s.View(100, 30), "End this session?") {
		t.Fatal("expected the quit confirmation")
	}
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("KeyHints = %v", hints)
	}

	s.Update(keyPress('n'))
	if s.confirmQuit || m.Screen() != session.ScreenActive {
		t.Fatal("N should keep the session going")
	}

	s.Back()
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command on Y")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if m.Screen() != session.ScreenHome {
		t.Errorf("screen = %v, want home", m.Screen())
	}
}

func TestQuizScreen_Status(t *testing.T) {
	_, s := startChoice(t, 3)
	if got := s.Status(); !strings.Contains(got, "Q 1/3") {
		t.Errorf("Status = %q", got)
	}
	if s.Title() != "Week 1" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestStartEmptyTopicShowsResults(t *testing.T) {
	m := newMachine()
	m.OpenTopics()
	m.SelectTopic(bank.Topic{ID: "empty", Title: "Empty", Kind: bank.KindChoice})

	if _, ok := Start(m).(*results.ResultsScreen); !ok {
		t.Error("empty topic should start on the results screen")
	}
}
