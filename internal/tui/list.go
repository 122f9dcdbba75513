package tui

import (
	"fmt"
	"strings"

	"github.com/matheuskafuri/hnsearch/internal/output"
	"github.com/matheuskafuri/hnsearch/internal/search"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func renderListItem(h search.Hit, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	title := h.Title
	if title == "" {
		title = "(untitled)"
	}
	if selected {
		title = itemSelectedStyle.Render("> " + output.Truncate(title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + output.Truncate(title, width-4))
	}

	meta := "  " + itemAuthorStyle.Render(h.Author) + " " +
		itemMetaStyle.Render("· "+plural(h.Points, "point", "points")+" · "+plural(h.NumComments, "comment", "comments"))

	return title + "\n" + meta
}

func renderList(hits []search.Hit, cursor int, height int, width int, loading bool) string {
	if len(hits) == 0 {
		if loading {
			return lipglossCenter("Loading...", width, height)
		}
		return lipglossCenter("No results", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(hits) {
		end = len(hits)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(hits[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
