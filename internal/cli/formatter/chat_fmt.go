package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownStyle picks the glamour style for a terminal. Non-interactive
// output gets the plain "notty" style so pipes stay free of escape codes.
func MarkdownStyle(interactive, dark bool) string {
	switch {
	case !interactive:
		return "notty"
	case dark:
		return "dark"
	default:
		return "light"
	}
}

// RenderMarkdown renders an assistant reply for the terminal. On a renderer
// error the raw text is returned.
func RenderMarkdown(md string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// ChatUser renders the user's side of a turn.
func ChatUser(text string) string {
	return StyleBlue.Bold(true).Render("You") + "\n" + text
}

// ChatAssistant renders the assistant label above an already rendered reply.
func ChatAssistant(rendered string) string {
	return StyleHeader.Render("Planforge") + "\n" + rendered
}

// ChatError renders an explanation shown in place of a reply.
func ChatError(text string) string {
	return StyleHeader.Render("Planforge") + "\n" + StyleYellow.Render(text)
}
