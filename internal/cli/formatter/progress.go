package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUtilization renders how much of a timeline the items need, like
// [████░░░░] 45%. Demand above capacity clamps the bar and turns it red.
func RenderUtilization(used, capacity, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if capacity > 0 {
		pct = float64(used) / float64(capacity)
	}

	filled := min(int(pct*float64(width)), width)
	filled = max(filled, 0)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct > 1:
		style = StyleRed
	case pct > 0.9:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
