package ledger

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// LedgerScreen displays the latest result for every completed written topic.
type LedgerScreen struct {
	book     *ledger.Book
	entries  []ledger.Entry
	totals   ledger.Totals
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*LedgerScreen)(nil)
var _ screen.KeyHintProvider = (*LedgerScreen)(nil)

// New creates a LedgerScreen.
func New(book *ledger.Book) *LedgerScreen {
	return &LedgerScreen{book: book, expanded: make(map[int]bool)}
}

func (s *LedgerScreen) Init() tea.Cmd {
	if s.book == nil {
		return nil
	}
	l := s.book.Ledger()
	s.entries = l.Entries()
	s.totals = l.Totals()
	return nil
}

func (s *LedgerScreen) Title() string {
	return "Ledger"
}

func (s *LedgerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LedgerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return s, nil
}

func (s *LedgerScreen) View(width, height int) string {
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No written topics completed yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Title.Render(
		fmt.Sprintf("%.1f / %d points (%.0f%%) across %d topics",
			s.totals.PointsEarned, s.totals.PointsPossible, s.totals.Percent(), s.totals.Completed))))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-28s %6.1f/%-4d %3.0f%%  %s",
			prefix, e.Title, e.PointsEarned, e.PointsPossible, e.Percent(), e.CompletedAt.Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s · %s mode · attempts: %d", e.TopicID, e.Mode, e.Attempts)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
