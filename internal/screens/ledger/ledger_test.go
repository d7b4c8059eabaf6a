package ledger

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

func testBook(t *testing.T) *ledger.Book {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	book, err := ledger.Open(context.Background(), st.SnapshotRepo(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return book
}

func TestLedgerScreen_Empty(t *testing.T) {
	s := New(testBook(t))
	s.Init()
	if !strings.Contains(s.View(100, 30), "No written topics") {
		t.Error("expected the empty message")
	}
}

func TestLedgerScreen_ShowsEntries(t *testing.T) {
	book := testBook(t)
	err := book.Record(context.Background(), &session.Summary{
		TopicID:        "strategy",
		TopicTitle:     "Strategy",
		Mode:           session.ModeExam,
		PointsEarned:   7.5,
		PointsPossible: 10,
		CompletedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	s := New(book)
	s.Init()
	view := s.View(120, 30)
	for _, want := range []string{"Strategy", "7.5", "75%", "Mar 01, 2026"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "attempts: 1") {
		t.Error("expanded view should show the attempt count")
	}
}

func TestLedgerScreen_NilBook(t *testing.T) {
	s := New(nil)
	if s.Init() != nil || s.View(80, 24) == "" {
		t.Error("nil book should render the empty message")
	}
}
