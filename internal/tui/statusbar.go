package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	shown     int
	total     int
	searchKey string
	page      int
	filter    string
	mode      mode
	loading   bool
}

func renderStatusBar(s statusInfo, width int) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := fmt.Sprintf(" %s · %s · page %d", keyStyle.Render(s.searchKey), plural(s.total, "story", "stories"), s.page)
	if s.filter != "" {
		left = fmt.Sprintf(" %s · %d of %s · page %d", keyStyle.Render(s.searchKey), s.shown, plural(s.total, "story", "stories"), s.page)
	}
	if s.loading {
		left += " (loading...)"
	}

	var right string
	switch s.mode {
	case modeSearch:
		right = " esc cancel  enter search "
	case modeFilter:
		right = " esc clear  enter keep "
	default:
		right = " x dismiss  n next page  o open  ? help  q quit "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
