package picker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "gothere/internal/modules/catalog/dto"
	"gothere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CatalogPort interface {
	Relationships(ctx context.Context) ([]catalogdto.RelationshipOutput, error)
	Vibes(ctx context.Context, relationshipID string) ([]catalogdto.VibeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RelationshipsLoadedMsg struct {
	Relationships []catalogdto.RelationshipOutput
	Err           error
}

type VibesLoadedMsg struct {
	Relationship catalogdto.RelationshipOutput
	Vibes        []catalogdto.VibeOutput
	Err          error
}

// ChosenMsg is emitted once both a relationship and a vibe are picked.
type ChosenMsg struct {
	Relationship catalogdto.RelationshipOutput
	Vibe         catalogdto.VibeOutput
	Vibes        []catalogdto.VibeOutput
}

// ─── list items ──────────────────────────────────────────────────────────────

type relationshipItem struct {
	rel catalogdto.RelationshipOutput
}

func (i relationshipItem) Title() string { return i.rel.Emoji + "  " + i.rel.Label }
func (i relationshipItem) Description() string {
	return fmt.Sprintf("%d vibes · %d prompts", i.rel.VibeCount, i.rel.DeckLength)
}
func (i relationshipItem) FilterValue() string { return i.rel.Label }

type vibeItem struct {
	vibe catalogdto.VibeOutput
}

func (i vibeItem) Title() string {
	return theme.Accent(i.vibe.Color).Render(i.vibe.Emoji + "  " + i.vibe.Label)
}
func (i vibeItem) Description() string {
	if i.vibe.Mixed {
		return fmt.Sprintf("every vibe shuffled · %d prompts", i.vibe.DeckLength)
	}
	return fmt.Sprintf("%d prompts", i.vibe.DeckLength)
}
func (i vibeItem) FilterValue() string { return i.vibe.Label }

// ─── model ───────────────────────────────────────────────────────────────────

type stage int

const (
	stageRelationship stage = iota
	stageVibe
)

// Model walks the user through relationship then vibe selection.
type Model struct {
	port    CatalogPort
	list    list.Model
	spinner spinner.Model
	loading bool
	stage   stage
	rels    []catalogdto.RelationshipOutput
	rel     catalogdto.RelationshipOutput
	vibes   []catalogdto.VibeOutput
	err     error
	width   int
	height  int
}

func New(port CatalogPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Who are you talking with?"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRelationshipsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case RelationshipsLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.rels = msg.Relationships
		cmd := m.showRelationships()
		return m, cmd

	case VibesLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.stage = stageVibe
		m.rel = msg.Relationship
		m.vibes = msg.Vibes
		items := make([]list.Item, len(msg.Vibes))
		for i, v := range msg.Vibes {
			items[i] = vibeItem{vibe: v}
		}
		m.list.Title = fmt.Sprintf("%s  %s · pick a vibe", msg.Relationship.Emoji, msg.Relationship.Label)
		cmd := m.list.SetItems(items)
		m.list.Select(0)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			cmd := m.choose()
			return m, cmd
		case "esc", "backspace":
			if m.stage == stageVibe {
				cmd := m.showRelationships()
				return m, cmd
			}
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading catalog…")
	}
	if m.err != nil {
		return theme.Hot.Render("catalog: " + m.err.Error())
	}
	return m.list.View()
}

// AtRoot reports whether the picker shows the relationship list, where esc
// has nothing left to go back to.
func (m Model) AtRoot() bool {
	return m.stage == stageRelationship
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) showRelationships() tea.Cmd {
	m.stage = stageRelationship
	m.list.Title = "Who are you talking with?"
	items := make([]list.Item, len(m.rels))
	selected := 0
	for i, r := range m.rels {
		items[i] = relationshipItem{rel: r}
		if r.ID == m.rel.ID {
			selected = i
		}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(selected)
	return cmd
}

func (m *Model) choose() tea.Cmd {
	switch item := m.list.SelectedItem().(type) {
	case relationshipItem:
		m.loading = true
		return tea.Batch(m.loadVibesCmd(item.rel), m.spinner.Tick)
	case vibeItem:
		chosen := ChosenMsg{Relationship: m.rel, Vibe: item.vibe, Vibes: m.vibes}
		return func() tea.Msg { return chosen }
	}
	return nil
}

func (m Model) loadRelationshipsCmd() tea.Cmd {
	return func() tea.Msg {
		rels, err := m.port.Relationships(context.Background())
		return RelationshipsLoadedMsg{Relationships: rels, Err: err}
	}
}

func (m Model) loadVibesCmd(rel catalogdto.RelationshipOutput) tea.Cmd {
	return func() tea.Msg {
		vibes, err := m.port.Vibes(context.Background(), rel.ID)
		return VibesLoadedMsg{Relationship: rel, Vibes: vibes, Err: err}
	}
}
