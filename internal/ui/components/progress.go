package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// lowTimeFraction is the share of the timer below which the bar turns red.
const lowTimeFraction = 0.2

// TimerBar displays the per-question countdown as a draining bar.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewTimerBar creates a new timer bar.
func NewTimerBar(remaining, total, width int) TimerBar {
	return TimerBar{Remaining: remaining, Total: total, Width: width}
}

// Fraction is the remaining share of the timer in [0, 1].
func (p TimerBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Remaining) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the bar followed by the remaining time as m:ss.
func (p TimerBar) View() string {
	clock := FormatClock(p.Remaining)
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + clock)

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	frac := p.Fraction()
	filled := int(float64(barWidth) * frac)
	empty := barWidth - filled

	fill := theme.ProgressFilled
	if frac < lowTimeFraction {
		fill = theme.ProgressLow
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		label
}

// FormatClock formats seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
