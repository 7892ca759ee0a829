package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Detail is shown as a right-aligned badge.
	Detail string
	// Warn marks the line, e.g. a role whose manager does not exist.
	Warn bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing connectors
// and right-aligned detail badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type line struct{ content, badge string }
	lines := make([]line, len(items))
	width := 0

	// lastAt[l] tracks whether the open ancestor at level l was the last child,
	// which decides between a pipe and a blank in descendant prefixes.
	lastAt := map[int]bool{}
	for i, it := range items {
		var prefix strings.Builder
		for l := 1; l < it.Level; l++ {
			if lastAt[l] {
				prefix.WriteString(treeBlank)
			} else {
				prefix.WriteString(treePipe)
			}
		}
		if it.Level > 0 {
			if it.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		lastAt[it.Level] = it.IsLast

		title := it.Title
		if it.Level == 0 {
			title = Bold(title)
		}
		if it.Warn {
			title = StyleYellow.Render("! ") + title
		}
		lines[i].content = Dim(prefix.String()) + title
		if it.Detail != "" {
			lines[i].badge = StyleBlue.Render("[ " + it.Detail + " ]")
		}
		width = max(width, lipgloss.Width(lines[i].content))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.content)
		if l.badge != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(l.content)) + "  " + l.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
