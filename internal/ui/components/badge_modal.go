package components

import (
	"github.com/charmbracelet/lipgloss"

	"gothere/internal/ui/theme"
)

// BadgeModal renders the unlock notice for a single badge.
func BadgeModal(icon, name, description string, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Hot.Render("Badge unlocked!"),
		"",
		icon+"  "+theme.Title.Render(name),
		theme.Muted.Render(description),
		"",
		theme.Muted.Render("enter: continue"),
	)
	if width > 0 {
		return theme.Modal.Width(width).Render(body)
	}
	return theme.Modal.Render(body)
}
