package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%. The bar is amber while
// under half, green after.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.5 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderCount renders done/total as a bar followed by "3/8 done".
func RenderCount(done, total, width int) string {
	if total == 0 {
		return Dim("no items yet")
	}
	return fmt.Sprintf("%s  %s", RenderProgress(float64(done)/float64(total), width), Dim(fmt.Sprintf("%d/%d done", done, total)))
}
