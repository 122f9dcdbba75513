package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// titleFilter narrows the displayed hits by title without touching the
// store.
type titleFilter struct {
	input textinput.Model
}

func newTitleFilter() titleFilter {
	ti := textinput.New()
	ti.Placeholder = "Filter titles..."
	ti.Prompt = searchPromptStyle.Render("filter ")
	ti.CharLimit = 100
	return titleFilter{input: ti}
}

func (f *titleFilter) term() string {
	return strings.TrimSpace(f.input.Value())
}

func (f *titleFilter) active() bool {
	return f.term() != ""
}

func (f *titleFilter) clear() {
	f.input.SetValue("")
	f.input.Blur()
}

func (f *titleFilter) render(width int, editing bool) string {
	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	if editing || f.active() {
		return barStyle.Render(f.input.View())
	}
	return barStyle.Render(tabInactiveStyle.Render("/ search") + " " + tabInactiveStyle.Render("f filter"))
}
