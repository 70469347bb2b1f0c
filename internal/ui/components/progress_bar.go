package components

import (
	"fmt"
	"strings"

	"gothere/internal/ui/theme"
)

// ProgressBar renders "███░░░ 6/20" with width cells of bar.
func ProgressBar(done, total, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	bar := theme.Good.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}
