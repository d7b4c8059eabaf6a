package mode

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/session"
)

func modeSelect(t *testing.T) *session.Machine {
	t.Helper()
	m := session.NewMachine(session.Options{Orderer: session.IdentityOrderer{}, Logger: zerolog.Nop()})
	m.OpenTopics()
	m.SelectTopic(bank.Topic{ID: "essay", Title: "Strategy", Kind: bank.KindWritten, Questions: []bank.Question{
		{ID: "w1", Prompt: "Discuss.", Kind: bank.KindWritten, Keywords: []string{"x"}, Marks: 10},
	}})
	if m.Screen() != session.ScreenModeSelect {
		t.Fatalf("screen = %v, want modeSelect", m.Screen())
	}
	return m
}

func TestModeScreen_View(t *testing.T) {
	s := New(modeSelect(t), session.DefaultDurations())
	view := s.View(100, 30)
	for _, want := range []string{"Practice", "10:00", "Exam", "5:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModeScreen_SelectExam(t *testing.T) {
	m := modeSelect(t)
	s := New(m, session.DefaultDurations())

	_, cmd := s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("replaced with %T", msg.Screen)
	}
	snap := m.Snapshot()
	if snap.Session.Mode != session.ModeExam || snap.Session.Duration != session.DefaultExamSeconds {
		t.Errorf("mode %q duration %d", snap.Session.Mode, snap.Session.Duration)
	}
}

func TestModeScreen_Back(t *testing.T) {
	m := modeSelect(t)
	cmd := New(m, session.DefaultDurations()).Back()
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if m.Screen() != session.ScreenTopicSelect {
		t.Errorf("screen = %v, want topicSelect", m.Screen())
	}
}
