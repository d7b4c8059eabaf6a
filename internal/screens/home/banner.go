package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const bannerArt = `
  ___        _     ____            _
 / _ \ _   _(_)___|  _ \  ___  ___| | __
| | | | | | | |_  / | | |/ _ \/ __| |/ /
| |_| | |_| | |/ /| |_| |  __/ (__|   <
 \__\_\\__,_|_/___|____/ \___|\___|_|\_\`

const bannerCompact = "Q U I Z D E C K"

// renderBanner returns the banner styled in the primary color, with a
// compact fallback for narrow terminals.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
