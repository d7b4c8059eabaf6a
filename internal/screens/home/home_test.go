package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/topics"
	"github.com/abhisek/quizdeck/internal/session"
)

func testHome(t *testing.T) (*session.Machine, *HomeScreen) {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	m := session.NewMachine(session.Options{Logger: zerolog.Nop()})
	return m, New(m, b, session.DefaultDurations(), nil)
}

func TestHomeScreen_View(t *testing.T) {
	_, h := testHome(t)
	view := h.View(100, 40)
	for _, want := range []string{"Start", "Ledger", "Quit", "topics"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_StartOpensTopics(t *testing.T) {
	m, h := testHome(t)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*topics.TopicsScreen); !ok {
		t.Errorf("pushed %T", msg.Screen)
	}
	if m.Screen() != session.ScreenTopicSelect {
		t.Errorf("screen = %v, want topicSelect", m.Screen())
	}
}

func TestHomeScreen_LedgerDisabledWithoutBook(t *testing.T) {
	_, h := testHome(t)
	if !h.menu.Items[1].Disabled {
		t.Error("ledger should be disabled without a book")
	}
}

func TestHomeScreen_OpenTopic(t *testing.T) {
	m, h := testHome(t)

	if _, err := h.OpenTopic("no-such-topic"); err == nil {
		t.Error("expected an error for an unknown topic")
	}

	cmd, err := h.OpenTopic("week-1-4")
	if err != nil {
		t.Fatalf("OpenTopic: %v", err)
	}
	if cmd == nil || m.Screen() != session.ScreenActive {
		t.Errorf("screen = %v, want active", m.Screen())
	}
}
