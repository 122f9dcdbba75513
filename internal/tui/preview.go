package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/hnsearch/internal/search"
)

func renderPreview(h *search.Hit, width, height int) string {
	if h == nil {
		return lipglossCenter("Select a story", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := h.Title
	if title == "" {
		title = "(untitled)"
	}
	titleBlock := previewTitleStyle.Width(contentWidth).Render(wrapText(title, contentWidth))
	byline := previewAuthorStyle.Render("by " + h.Author)
	stats := previewBodyStyle.Render(plural(h.Points, "point", "points") + " · " + plural(h.NumComments, "comment", "comments"))
	link := previewLinkStyle.Width(contentWidth).Render("Link: " + h.Link())
	discussion := previewLinkStyle.Width(contentWidth).Render("Discussion: " + h.DiscussionURL())

	content := lipgloss.JoinVertical(lipgloss.Left, titleBlock, byline, stats, link, discussion)

	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
