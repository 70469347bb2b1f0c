package journey

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "gothere/internal/modules/progress/dto"
	"gothere/internal/ui/components"
	"gothere/internal/ui/theme"
)

type JourneyPort interface {
	Journey(ctx context.Context) (progressdto.JourneyOutput, error)
}

type LoadedMsg struct {
	Journey progressdto.JourneyOutput
	Err     error
}

// Model shows overall progress, the per-combination grid and the badge wall
// in a scrollable viewport.
type Model struct {
	port     JourneyPort
	viewport viewport.Model
	journey  progressdto.JourneyOutput
	err      error
	width    int
	height   int
}

func New(port JourneyPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	return Model{port: port, viewport: vp}
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		j, err := m.port.Journey(context.Background())
		return LoadedMsg{Journey: j, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.viewport.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.journey = msg.Journey
		}
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Hot.Render("journey: " + m.err.Error())
	}
	j := m.journey
	barW := m.width / 3
	if barW < 10 {
		barW = 10
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Your journey") + "\n\n")
	sb.WriteString(components.ProgressBar(j.TotalViewed, j.TotalPossible, barW))
	sb.WriteString(fmt.Sprintf("  %d%% explored\n", j.Percent))
	sb.WriteString(fmt.Sprintf("🔥 %d-day streak   ❤️ %d saved\n\n", j.Streak, j.SavedCount))

	sb.WriteString(theme.Title.Render("Decks") + "\n")
	lastRel := ""
	for _, c := range j.Combos {
		if c.RelationshipID != lastRel {
			sb.WriteString("\n" + theme.Hot.Render(c.RelationshipID) + "\n")
			lastRel = c.RelationshipID
		}
		mark := "  "
		if c.Completed {
			mark = theme.Good.Render("✓ ")
		}
		sb.WriteString(fmt.Sprintf("  %s%-10s %s\n", mark, c.VibeID, components.ProgressBar(c.Seen, c.Total, barW)))
	}

	sb.WriteString("\n" + theme.Title.Render("Badges") + "\n\n")
	for _, b := range j.Badges {
		line := fmt.Sprintf("%s  %s  %s", b.Icon, b.Name, b.Description)
		if b.Unlocked {
			sb.WriteString(line + "\n")
		} else {
			sb.WriteString(theme.Muted.Render("🔒 "+b.Name+"  "+b.Description) + "\n")
		}
	}
	return sb.String()
}
