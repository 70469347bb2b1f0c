package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Pink     = lipgloss.Color("#f5c2e7")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)

	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 3).
		Align(lipgloss.Center)

	// RareCard is layered over Card for the cards flagged rare.
	RareCard = Card.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(Yellow)

	Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Pink).
		Background(Base).
		Foreground(Text).
		Padding(1, 4).
		Align(lipgloss.Center)
)

// Accent returns a foreground style for a catalog colour, falling back to
// Lavender when the catalog has none.
func Accent(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Foreground(Lavender)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
