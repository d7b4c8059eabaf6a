package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	ledgerscreen "github.com/abhisek/quizdeck/internal/screens/ledger"
	"github.com/abhisek/quizdeck/internal/screens/topics"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen is the landing screen.
type HomeScreen struct {
	machine   *session.Machine
	bank      *bank.Bank
	durations session.Durations
	book      *ledger.Book
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. book may be nil when no ledger is kept.
func New(m *session.Machine, b *bank.Bank, d session.Durations, book *ledger.Book) *HomeScreen {
	h := &HomeScreen{machine: m, bank: b, durations: d, book: book}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start", Description: "Pick a topic", Action: h.openTopics},
		{Label: "Ledger", Description: "Written topic results", Disabled: book == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: ledgerscreen.New(book)} }
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) openTopics() tea.Cmd {
	if !h.machine.OpenTopics() {
		return nil
	}
	next := topics.New(h.machine, h.bank.Topics, h.durations, h.book)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// OpenTopic opens the topic list and starts a session for id, as if the
// learner had picked it.
func (h *HomeScreen) OpenTopic(id string) (tea.Cmd, error) {
	if _, err := h.bank.Topic(id); err != nil {
		return nil, err
	}
	if !h.machine.OpenTopics() {
		return nil, fmt.Errorf("cannot open topics from %s", h.machine.Screen())
	}
	list := topics.New(h.machine, h.bank.Topics, h.durations, h.book)
	list.Select(id)
	start := list.Start()
	return tea.Sequence(
		func() tea.Msg { return router.PushScreenMsg{Screen: list} },
		start,
	), nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{renderBanner(width)}
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, theme.Subtitle.Render(h.stats()))
	}
	sections = append(sections, theme.Card.Render(h.menu.View()))

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(layout.Centered(s, width))
	}
	return b.String()
}

func (h *HomeScreen) stats() string {
	line := fmt.Sprintf("%d topics · %d questions", len(h.bank.Topics), h.bank.QuestionCount())
	if h.book == nil {
		return line
	}
	t := h.book.Ledger().Totals()
	if t.Completed == 0 {
		return line
	}
	return line + fmt.Sprintf(" · %.1f/%d points on written topics", t.PointsEarned, t.PointsPossible)
}
