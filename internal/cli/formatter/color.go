package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/planforge/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LevelStyle colors a market risk grade.
func LevelStyle(l domain.Level) lipgloss.Style {
	switch l {
	case domain.LevelHigh:
		return StyleRed
	case domain.LevelMedium:
		return StyleYellow
	case domain.LevelLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// LevelBadge renders a grade such as "● High".
func LevelBadge(l domain.Level) string {
	if l == "" {
		return StyleDim.Render("● --")
	}
	return LevelStyle(l).Render("● " + string(l))
}

// QuadrantStyle gives each SWOT quadrant its own accent.
func QuadrantStyle(q domain.Quadrant) lipgloss.Style {
	switch q {
	case domain.Strengths:
		return StyleGreen
	case domain.Weaknesses:
		return StyleRed
	case domain.Opportunities:
		return StyleBlue
	case domain.Threats:
		return StyleYellow
	default:
		return StyleFg
	}
}

// Header renders an upper-cased section title with a dim underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a non-fatal problem the user should know about.
func Warning(text string) string {
	return StyleYellow.Render("⚠ " + text)
}
