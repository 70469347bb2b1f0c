package deck

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "gothere/internal/modules/catalog/dto"
	progressdto "gothere/internal/modules/progress/dto"
	"gothere/internal/platform/clipboard"
	"gothere/internal/ui/components"
	"gothere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProgressPort interface {
	Deck(ctx context.Context, relationshipID, vibeID string) (progressdto.DeckOutput, error)
	MarkSeen(ctx context.Context, relationshipID, vibeID string, index int) (progressdto.MarkSeenOutput, error)
	Save(ctx context.Context, question, relationshipID, vibeID string) (progressdto.SaveOutput, error)
	DismissOnboarding(ctx context.Context) (progressdto.StateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Deck progressdto.DeckOutput
	Err  error
}

// SeenMsg reports a recorded view. The app model also reads it for badge,
// milestone and streak feedback.
type SeenMsg struct {
	Index int
	Out   progressdto.MarkSeenOutput
	Err   error
}

type SavedMsg struct {
	Index int
	Out   progressdto.SaveOutput
	Err   error
}

// CopiedMsg reports the outcome of putting a card on the clipboard.
type CopiedMsg struct {
	Err error
}

// ExitMsg asks the app to leave the deck.
type ExitMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port  ProgressPort
	clip  clipboard.Writer
	rel   catalogdto.RelationshipOutput
	vibe  catalogdto.VibeOutput
	vibes map[string]catalogdto.VibeOutput

	deck     progressdto.DeckOutput
	current  int
	complete bool

	// replay is set when the deck was already complete, so wrapping around
	// keeps cycling instead of showing the completion screen again.
	replay  bool
	pending bool
	loading bool
	notice  string
	err     error
	width   int
	height  int

	// encouragement is the rotating micro-copy under the card.
	encouragement string
}

// New builds the deck view. A nil clip disables copying.
func New(port ProgressPort, clip clipboard.Writer) Model {
	return Model{port: port, clip: clip}
}

// Open switches the view to a combination and loads its deck.
func (m *Model) Open(rel catalogdto.RelationshipOutput, vibe catalogdto.VibeOutput, vibes []catalogdto.VibeOutput) tea.Cmd {
	m.rel = rel
	m.vibe = vibe
	m.vibes = make(map[string]catalogdto.VibeOutput, len(vibes))
	for _, v := range vibes {
		m.vibes[v.ID] = v
	}
	m.deck = progressdto.DeckOutput{}
	m.complete = false
	m.replay = false
	m.pending = false
	m.notice = ""
	m.err = nil
	m.loading = true
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.deck = msg.Deck
		m.current = msg.Deck.CurrentIndex
		m.replay = msg.Deck.Completed
		m.encouragement = msg.Deck.Encouragement

	case SeenMsg:
		m.pending = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.markSeen(msg.Index)
		m.deck.SeenCount = msg.Out.SeenCount
		m.encouragement = msg.Out.Encouragement
		switch {
		case msg.Out.DeckComplete && !m.replay:
			m.complete = true
			m.deck.Completed = true
		case msg.Out.DeckComplete:
			m.current = (msg.Index + 1) % len(m.deck.Cards)
		default:
			m.current = msg.Out.NextIndex
		}

	case SavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if msg.Index >= 0 && msg.Index < len(m.deck.Cards) {
			m.deck.Cards[msg.Index].Saved = true
		}
		if msg.Out.Changed {
			m.notice = "♥ saved"
		}

	case CopiedMsg:
		if msg.Err != nil {
			m.notice = ""
			m.err = fmt.Errorf("copy: %w", msg.Err)
			return m, nil
		}
		m.err = nil
		m.notice = "Copied to clipboard!"

	case tea.KeyMsg:
		if m.loading || m.pending {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		return m, func() tea.Msg { return ExitMsg{} }
	}
	if m.complete {
		if msg.String() == "r" {
			m.complete = false
			m.replay = true
			m.current = 0
		}
		return m, nil
	}
	if len(m.deck.Cards) == 0 {
		return m, nil
	}

	m.notice = ""
	switch msg.String() {
	case "right", "l":
		return m.advance(nil)
	case "left", "h":
		return m.advance(m.saveCmd(m.current))
	case "s":
		return m, m.saveCmd(m.current)
	case "c":
		return m, m.copyCmd(m.current)
	}
	return m, nil
}

// advance records the current card and moves on. A non-nil first runs
// before the view is recorded.
func (m Model) advance(first tea.Cmd) (Model, tea.Cmd) {
	m.pending = true
	cmds := []tea.Cmd{}
	if first != nil {
		cmds = append(cmds, first)
	}
	cmds = append(cmds, m.seenCmd(m.current))
	if m.deck.ShowOnboarding {
		m.deck.ShowOnboarding = false
		cmds = append(cmds, m.dismissOnboardingCmd())
	}
	return m, tea.Sequence(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Muted.Render("Shuffling the deck…")
	}
	if m.err != nil && len(m.deck.Cards) == 0 {
		return theme.Hot.Render("deck: " + m.err.Error())
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader() + "\n\n")
	if m.complete {
		sb.WriteString(m.renderComplete())
	} else {
		sb.WriteString(m.renderCard() + "\n")
		if m.deck.ShowOnboarding {
			sb.WriteString("\n" + theme.Hot.Render("→ next card   ← save it and move on") + "\n")
		} else if m.encouragement != "" {
			sb.WriteString("\n" + theme.Muted.Italic(true).Render(m.encouragement) + "\n")
		}
	}
	if m.notice != "" {
		sb.WriteString("\n" + theme.Good.Render(m.notice))
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Hot.Render(m.err.Error()))
	}
	sb.WriteString("\n" + theme.Muted.Render(m.keyHints()))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) markSeen(index int) {
	if index >= 0 && index < len(m.deck.Cards) {
		m.deck.Cards[index].Seen = true
	}
}

func (m Model) cardWidth() int {
	w := m.width - 8
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("%s %s  ·  %s %s", m.rel.Emoji, m.rel.Label, m.vibe.Emoji, m.vibe.Label)
	bar := components.ProgressBar(m.deck.SeenCount, m.deck.Total, m.cardWidth()/2)
	return lipgloss.JoinVertical(lipgloss.Center, theme.Accent(m.vibe.Color).Bold(true).Render(title), bar)
}

func (m Model) renderCard() string {
	if m.current < 0 || m.current >= len(m.deck.Cards) {
		return ""
	}
	card := m.deck.Cards[m.current]
	style := theme.Card
	if card.Rare {
		style = theme.RareCard
	} else if v, ok := m.vibes[card.SourceVibe]; ok && v.Color != "" {
		style = style.BorderForeground(lipgloss.Color(v.Color))
	}

	lines := []string{card.Text}
	var tags []string
	if m.deck.Mixed {
		if v, ok := m.vibes[card.SourceVibe]; ok {
			tags = append(tags, theme.Accent(v.Color).Render(v.Emoji+" "+v.Label))
		}
	}
	if card.Rare {
		tags = append(tags, lipgloss.NewStyle().Foreground(theme.Yellow).Render("✦ rare"))
	}
	if card.Saved {
		tags = append(tags, theme.Good.Render("♥"))
	}
	if len(tags) > 0 {
		lines = append(lines, "", strings.Join(tags, "  "))
	}
	return style.Width(m.cardWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderComplete() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Hot.Render("🎉 Deck complete!"),
		"",
		fmt.Sprintf("You went through all %d prompts.", m.deck.Total),
	)
	return theme.Card.Width(m.cardWidth()).Render(body) + "\n"
}

func (m Model) keyHints() string {
	if m.complete {
		return "r: go again  esc: back"
	}
	return "→/l: next  ←/h: save & next  s: save  c: copy  esc: back"
}

func (m Model) saveVibe(index int) string {
	if index >= 0 && index < len(m.deck.Cards) && m.deck.Cards[index].SourceVibe != "" {
		return m.deck.Cards[index].SourceVibe
	}
	return m.deck.VibeID
}

func (m Model) loadCmd() tea.Cmd {
	rel, vibe := m.rel.ID, m.vibe.ID
	return func() tea.Msg {
		deck, err := m.port.Deck(context.Background(), rel, vibe)
		return LoadedMsg{Deck: deck, Err: err}
	}
}

func (m Model) seenCmd(index int) tea.Cmd {
	rel, vibe := m.deck.RelationshipID, m.deck.VibeID
	return func() tea.Msg {
		out, err := m.port.MarkSeen(context.Background(), rel, vibe, index)
		return SeenMsg{Index: index, Out: out, Err: err}
	}
}

func (m Model) saveCmd(index int) tea.Cmd {
	if index < 0 || index >= len(m.deck.Cards) {
		return nil
	}
	text := m.deck.Cards[index].Text
	rel, vibe := m.deck.RelationshipID, m.saveVibe(index)
	return func() tea.Msg {
		out, err := m.port.Save(context.Background(), text, rel, vibe)
		return SavedMsg{Index: index, Out: out, Err: err}
	}
}

func (m Model) copyCmd(index int) tea.Cmd {
	if m.clip == nil || index < 0 || index >= len(m.deck.Cards) {
		return nil
	}
	text := m.deck.Cards[index].Text
	clip := m.clip
	return func() tea.Msg {
		return CopiedMsg{Err: clip.WriteAll(text)}
	}
}

func (m Model) dismissOnboardingCmd() tea.Cmd {
	return func() tea.Msg {
		_, _ = m.port.DismissOnboarding(context.Background())
		return nil
	}
}
