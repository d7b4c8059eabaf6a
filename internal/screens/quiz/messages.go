package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// tickMsg is one elapsed second of the question timer. token ties it to the
// question it was armed for.
type tickMsg struct {
	token int
}

func tick(token int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{token: token}
	})
}
