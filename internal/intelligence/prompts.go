package intelligence

import (
	"strings"

	"github.com/alexanderramin/planforge/internal/domain"
)

const assistantBasePrompt = `You are Planforge, a friendly business planning assistant. You help entrepreneurs with their Business Model Canvas.

The Business Model Canvas has 9 building blocks:
%BLOCKS%

Be conversational, encouraging, and helpful. Ask follow-up questions to get more details.
Keep responses concise (2-3 sentences max).`

// CanvasContext classifies the canvas blocks. filled holds "Label: value"
// lines for blocks with text; empty holds the labels of blank blocks.
func CanvasContext(c *domain.Canvas) (filled, empty []string) {
	if c == nil {
		return nil, nil
	}
	f, e := c.Split()
	for _, b := range f {
		v, _ := c.Get(b.Key)
		filled = append(filled, b.Label+": "+strings.TrimSpace(v))
	}
	for _, b := range e {
		empty = append(empty, b.Label)
	}
	return filled, empty
}

// BuildSystemPrompt describes the assistant and, when a canvas is given,
// appends what is already filled in and what is still missing.
func BuildSystemPrompt(c *domain.Canvas) string {
	var blocks strings.Builder
	for i, b := range domain.CanvasBlocks {
		if i > 0 {
			blocks.WriteString("\n")
		}
		blocks.WriteString("- " + b.Label + ": " + b.Hint)
	}
	prompt := strings.Replace(assistantBasePrompt, "%BLOCKS%", blocks.String(), 1)
	if c == nil {
		return prompt
	}

	filled, empty := CanvasContext(c)
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n--- CURRENT CANVAS STATE ---\n")
	if len(filled) > 0 {
		b.WriteString("\nFilled sections:\n")
		b.WriteString(strings.Join(filled, "\n"))
	}
	if len(empty) > 0 {
		b.WriteString("\n\nEmpty sections (need to be filled): ")
		b.WriteString(strings.Join(empty, ", "))
	}
	if len(filled) == 0 {
		b.WriteString("\nThe canvas is currently empty. Help the user get started!")
	}
	return b.String()
}
